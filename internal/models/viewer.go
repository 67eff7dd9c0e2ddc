package models

// Viewer identifies who is reading or writing. It is resolved once per
// request and passed explicitly to every call that depends on it.
type Viewer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Guest     bool   `json:"guest"`
	Moderator bool   `json:"moderator"`
}

// Anonymous is the viewer of a request that carried no identity.
var Anonymous = Viewer{Guest: true}

// SignedIn reports whether the viewer has any identity, guest sessions included.
func (v Viewer) SignedIn() bool {
	return v.ID != ""
}

// CanAuthor reports whether the viewer may create posts and comments.
func (v Viewer) CanAuthor() bool {
	return v.ID != "" && !v.Guest
}

// Owns reports whether the viewer wrote a record with the given author id.
func (v Viewer) Owns(userID string) bool {
	return v.ID != "" && v.ID == userID
}
