package feedback

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/feedbackboard/feedback-client/internal/api"
	"github.com/feedbackboard/feedback-client/internal/models"
	"github.com/feedbackboard/feedback-client/internal/session"
)

// APIClient is the remote boundary the repository talks to.
type APIClient interface {
	ListFeedbacks(ctx context.Context, userID string) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, payload models.CreateFeedbackRequest) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id string, payload models.UpdateFeedbackRequest) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
	LikeFeedback(ctx context.Context, id string) (*models.Feedback, error)
	ListComments(ctx context.Context, feedbackID string) ([]models.Comment, error)
	AddComment(ctx context.Context, feedbackID, text string) error
	DeleteComment(ctx context.Context, commentID string) error
}

// ConfirmFunc is a blocking yes/no gate asked before a destructive
// action is dispatched.
type ConfirmFunc func() bool

// ErrNotConfirmed is returned when the confirmation gate declined;
// no request is issued.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Repository holds the client-side collection of feedback entries
// owned by the current user and reconciles it against the server on
// every mutation. The collection is only ever replaced or patched from
// a reconciliation step, never from a render path.
type Repository struct {
	mu      sync.RWMutex
	client  APIClient
	session *session.Store
	coord   *Coordinator
	items   []models.Feedback
	loaders map[string]*CommentLoader
}

func NewRepository(client APIClient, s *session.Store) *Repository {
	return &Repository{
		client:  client,
		session: s,
		coord:   NewCoordinator(),
		loaders: make(map[string]*CommentLoader),
	}
}

// Coordinator exposes the per-entity action gates, e.g. for a UI that
// wants to disable a control while its action is pending.
func (r *Repository) Coordinator() *Coordinator {
	return r.coord
}

// Items returns a copy of the local collection in server order.
func (r *Repository) Items() []models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Feedback, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the local item with the given id.
func (r *Repository) Get(id string) (models.Feedback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.Feedback{}, false
}

// Refresh fetches the current user's feedback entries and replaces the
// local collection wholesale. An empty result is a valid success, not
// an error.
func (r *Repository) Refresh(ctx context.Context) error {
	user, ok := r.session.CurrentUser()
	if !ok {
		return &api.UnauthorizedError{Message: "Faça login para continuar."}
	}

	return r.coord.Run(user.ID, ActionList, func() error {
		items, err := r.client.ListFeedbacks(ctx, user.ID)
		if err != nil {
			return err
		}

		r.mu.Lock()
		r.items = items
		r.mu.Unlock()

		log.WithFields(log.Fields{
			"prefix": "feedback",
			"count":  len(items),
		}).Debug("collection replaced")
		return nil
	})
}

// Create submits a new entry and appends the canonical item returned
// by the server to the local collection.
func (r *Repository) Create(ctx context.Context, payload models.CreateFeedbackRequest) (*models.Feedback, error) {
	user, ok := r.session.CurrentUser()
	if !ok {
		return nil, &api.UnauthorizedError{Message: "Faça login para continuar."}
	}

	var created *models.Feedback
	err := r.coord.Run(user.ID, ActionCreate, func() error {
		fb, err := r.client.CreateFeedback(ctx, payload)
		if err != nil {
			return err
		}

		r.mu.Lock()
		r.items = append(r.items, *fb)
		r.mu.Unlock()

		created = fb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update submits changed fields for an entry and replaces the matching
// local item with the canonical result.
func (r *Repository) Update(ctx context.Context, id string, payload models.UpdateFeedbackRequest) (*models.Feedback, error) {
	var updated *models.Feedback
	err := r.coord.Run(id, ActionEdit, func() error {
		fb, err := r.client.UpdateFeedback(ctx, id, payload)
		if err != nil {
			return err
		}

		r.mu.Lock()
		r.items = applyPatch(r.items, id, func(models.Feedback) models.Feedback {
			return *fb
		})
		r.mu.Unlock()

		updated = fb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete asks the confirmation gate, then removes the entry remotely
// and locally. When the gate declines, no request is issued.
func (r *Repository) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	if confirm == nil || !confirm() {
		return ErrNotConfirmed
	}

	return r.coord.Run(id, ActionDelete, func() error {
		if err := r.client.DeleteFeedback(ctx, id); err != nil {
			return err
		}

		r.mu.Lock()
		r.items = removeByID(r.items, id)
		delete(r.loaders, id)
		r.mu.Unlock()

		log.WithFields(log.Fields{
			"prefix": "feedback",
			"id":     id,
		}).Info("feedback removed")
		return nil
	})
}

// Like increments the entry's like count by one. Only the like count
// is patched on the local item; concurrently edited fields are left
// untouched.
func (r *Repository) Like(ctx context.Context, id string) (*models.Feedback, error) {
	var liked *models.Feedback
	err := r.coord.Run(id, ActionLike, func() error {
		fb, err := r.client.LikeFeedback(ctx, id)
		if err != nil {
			return err
		}

		r.mu.Lock()
		r.items = applyPatch(r.items, id, func(it models.Feedback) models.Feedback {
			it.Likes = fb.Likes
			return it
		})
		r.mu.Unlock()

		liked = fb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return liked, nil
}

// Comments returns the comment loader for a feedback entry, creating
// it on first use. Loaders are independent per entry.
func (r *Repository) Comments(feedbackID string) *CommentLoader {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loaders[feedbackID]; ok {
		return l
	}
	l := newCommentLoader(r.client, r.session, r.coord, feedbackID)
	r.loaders[feedbackID] = l
	return l
}
