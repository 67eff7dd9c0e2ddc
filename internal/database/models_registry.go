package database

import "chika/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.BlockedAuthor{},
		&models.FilteredKeyword{},
		&models.Report{},
		&models.Favorite{},
		&models.Follow{},
	}
}
