package auth

import "github.com/dkowalski/quoteshelf/internal/server/models"

// Ownership is the sole authorization axis: there is no role hierarchy and
// no admin override.

// CanRead reports whether the viewer may see the post: public posts are
// readable by anyone, private posts only by their owner. viewer is nil for
// guests.
func CanRead(viewer *int64, post *models.Post) bool {
	if !post.Private {
		return true
	}
	if viewer == nil || post.CreatorID == nil {
		return false
	}
	return *viewer == *post.CreatorID
}

// CanMutate reports whether the viewer may update or delete the post.
// Only the owner may; a post without an owner is never mutable.
func CanMutate(viewer int64, post *models.Post) bool {
	if post.CreatorID == nil {
		return false
	}
	return viewer == *post.CreatorID
}
