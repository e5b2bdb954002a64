package feedback

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/feedbackboard/feedback-client/internal/api"
	"github.com/feedbackboard/feedback-client/internal/models"
	"github.com/feedbackboard/feedback-client/internal/session"
)

// CommentLoader fetches and mutates the comment sub-collection of one
// feedback entry. The list is loaded lazily on first use and replaced
// wholesale after every mutation; it is never patched in place, which
// keeps server-side ordering and canonical ids.
type CommentLoader struct {
	mu         sync.RWMutex
	client     APIClient
	session    *session.Store
	coord      *Coordinator
	feedbackID string
	comments   []models.Comment
	loaded     bool
}

func newCommentLoader(client APIClient, s *session.Store, coord *Coordinator, feedbackID string) *CommentLoader {
	return &CommentLoader{
		client:     client,
		session:    s,
		coord:      coord,
		feedbackID: feedbackID,
	}
}

// Comments returns the cached list and whether a load has completed.
func (l *CommentLoader) Comments() ([]models.Comment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Comment, len(l.comments))
	copy(out, l.comments)
	return out, l.loaded
}

// Load fetches the comment list, fully replacing the cached one.
// Callers invoke it once when the entry first becomes visible and
// again to force a reload.
func (l *CommentLoader) Load(ctx context.Context) ([]models.Comment, error) {
	comments, err := l.client.ListComments(ctx, l.feedbackID)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.comments = comments
	l.loaded = true
	l.mu.Unlock()

	log.WithFields(log.Fields{
		"prefix":      "feedback",
		"feedback_id": l.feedbackID,
		"count":       len(comments),
	}).Debug("comments loaded")
	return comments, nil
}

// Add posts a new comment and reloads the list so ordering and ids
// come from the server.
func (l *CommentLoader) Add(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return &api.ValidationError{Message: api.MsgMissingFields}
	}
	if l.session.IsAnonymous() {
		return &api.UnauthorizedError{Message: "Faça login para continuar."}
	}

	return l.coord.Run(l.feedbackID, ActionCommentAdd, func() error {
		if err := l.client.AddComment(ctx, l.feedbackID, text); err != nil {
			return err
		}
		_, err := l.Load(ctx)
		return err
	})
}

// Delete removes a comment and reloads the list. On failure the cached
// list is left unchanged; there is no optimistic removal.
func (l *CommentLoader) Delete(ctx context.Context, commentID string) error {
	return l.coord.Run(commentID, ActionCommentDelete, func() error {
		if err := l.client.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		_, err := l.Load(ctx)
		return err
	})
}
