package models

import "time"

// Comment represents a comment on a feedback entry. Comments are
// fetched lazily per feedback and never embedded in the Feedback
// payload itself.
type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"id_usuario"`
	Text      string    `json:"texto"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddCommentRequest defines the request body for commenting on a feedback.
type AddCommentRequest struct {
	Text string `json:"texto" validate:"required"`
}
