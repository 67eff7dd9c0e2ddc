package feed

import "time"

// DefaultEditWindow is how long after creation an author may edit.
const DefaultEditWindow = 15 * time.Minute

// CanEdit reports whether a record created at created is still inside
// window at now. Records without a creation instant are never editable.
//
// This only gates what the client offers; the write path checks it again.
func CanEdit(created *time.Time, now time.Time, window time.Duration) bool {
	if created == nil || created.IsZero() {
		return false
	}
	return now.Sub(*created) <= window
}
