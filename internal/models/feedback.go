package models

import (
	"io"
	"time"
)

// Feedback represents a feedback entry as served by the API. Field
// names follow the server's wire format.
type Feedback struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"id_usuario"`
	Store       string    `json:"loja"`
	Product     string    `json:"produto"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	Likes       int       `json:"curtidas"`
	Media       []Media   `json:"midia,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MediaFile is a media attachment to be uploaded alongside a create
// or update request. Content is consumed exactly once when the
// multipart body is built.
type MediaFile struct {
	Name    string
	Content io.Reader
}

// CreateFeedbackRequest defines the fields for creating a new feedback.
// All four text fields are required; media files are optional.
type CreateFeedbackRequest struct {
	Store       string `validate:"required"`
	Product     string `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Media       []MediaFile
}

// UpdateFeedbackRequest defines the fields for updating an existing
// feedback. New media files are appended to the existing sequence on
// the server, never replacing it.
type UpdateFeedbackRequest struct {
	Store       string `validate:"required"`
	Product     string `validate:"required"`
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Media       []MediaFile
}
