package feedback

import "github.com/feedbackboard/feedback-client/internal/models"

// CanMutate reports whether the given user may edit or delete the
// entry. It only gates UI affordances; the server is the authority and
// may still reject with Unauthorized (e.g. a stale session).
func CanMutate(fb models.Feedback, userID string) bool {
	return userID != "" && fb.UserID == userID
}

// CanDeleteComment reports whether the given user may delete the
// comment. Same caveat as CanMutate.
func CanDeleteComment(c models.Comment, userID string) bool {
	return userID != "" && c.UserID == userID
}
