package feed

import "chika/internal/models"

// Gallery media kinds.
const (
	MediaImage = "image"
	MediaGIF   = "gif"
)

// OriginalPostSource labels media attached to the post itself.
const OriginalPostSource = "Original Post"

// GalleryItem is one picture attached to a thread.
type GalleryItem struct {
	URL string `json:"url"`
	// Source is what the gallery shows under the picture.
	Source    string `json:"source"`
	Author    string `json:"author"`
	Kind      string `json:"kind"`
	CommentID string `json:"comment_id,omitempty"`
}

// Gallery collects the post's image followed by every comment's image and
// GIF, in comment order. Stickers are not gallery media. Records the viewer
// has hidden contribute nothing.
func Gallery(post *models.Post, comments []*models.Comment, prefs Preferences) []GalleryItem {
	items := []GalleryItem{}
	if post != nil && post.ImageURL != "" && prefs.Visible(FieldsOf(post)) {
		items = append(items, GalleryItem{
			URL:    post.ImageURL,
			Source: OriginalPostSource,
			Author: post.Author,
			Kind:   MediaImage,
		})
	}
	for _, c := range Filter(comments, prefs) {
		if c.ImageURL != "" {
			items = append(items, GalleryItem{
				URL:       c.ImageURL,
				Source:    c.Author,
				Author:    c.Author,
				Kind:      MediaImage,
				CommentID: c.ID,
			})
		}
		if c.GifURL != "" {
			items = append(items, GalleryItem{
				URL:       c.GifURL,
				Source:    c.Author + " (GIF)",
				Author:    c.Author,
				Kind:      MediaGIF,
				CommentID: c.ID,
			})
		}
	}
	return items
}
