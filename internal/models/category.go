package models

// DefaultCategory is used when a post is created without a category.
const DefaultCategory = "Chika"

// AllCategories is the filter value that matches every category.
const AllCategories = "All"

// Categories is the canonical, ordered list of post categories shared by
// post creation and feed filtering.
var Categories = []string{
	"Chika",
	"Maroon School",
	"Green School",
	"Blue School",
	"Yellow School",
	"School",
	"Love and Dating",
	"Work",
	"Politics",
	"Money & Hustle",
	"Rant",
	"Neighbourhood",
	"Confessions",
}

// IsCategory reports whether name is one of Categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
