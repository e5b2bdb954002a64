package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/feedbackboard/feedback-client/internal/api"
	"github.com/feedbackboard/feedback-client/internal/models"
)

// stubClient is a hand-written in-memory APIClient used across the
// package tests. Set err to make every remote call fail.
type stubClient struct {
	mu        sync.Mutex
	err       error
	feedbacks []models.Feedback
	comments  map[string][]models.Comment
	calls     map[string]int
	nextID    int
	nextCID   int
}

func newStubClient() *stubClient {
	return &stubClient{
		comments: make(map[string][]models.Comment),
		calls:    make(map[string]int),
	}
}

func (s *stubClient) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubClient) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *stubClient) ListFeedbacks(_ context.Context, userID string) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["list"]++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Feedback, 0)
	for _, fb := range s.feedbacks {
		if fb.UserID == userID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (s *stubClient) CreateFeedback(_ context.Context, payload models.CreateFeedbackRequest) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["create"]++
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	fb := models.Feedback{
		ID:          fmt.Sprintf("fb%d", s.nextID),
		UserID:      "u1",
		Store:       payload.Store,
		Product:     payload.Product,
		Title:       payload.Title,
		Description: payload.Description,
	}
	for _, f := range payload.Media {
		fb.Media = append(fb.Media, models.Media{URL: "/uploads/" + f.Name, Type: models.MediaTypePhoto})
	}
	s.feedbacks = append(s.feedbacks, fb)
	return &fb, nil
}

func (s *stubClient) UpdateFeedback(_ context.Context, id string, payload models.UpdateFeedbackRequest) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["update"]++
	if s.err != nil {
		return nil, s.err
	}
	for i, fb := range s.feedbacks {
		if fb.ID == id {
			fb.Store = payload.Store
			fb.Product = payload.Product
			fb.Title = payload.Title
			fb.Description = payload.Description
			for _, f := range payload.Media {
				fb.Media = append(fb.Media, models.Media{URL: "/uploads/" + f.Name, Type: models.MediaTypePhoto})
			}
			s.feedbacks[i] = fb
			return &fb, nil
		}
	}
	return nil, &api.NotFoundError{Message: "Feedback não encontrado."}
}

func (s *stubClient) DeleteFeedback(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["delete"]++
	if s.err != nil {
		return s.err
	}
	for i, fb := range s.feedbacks {
		if fb.ID == id {
			s.feedbacks = append(s.feedbacks[:i], s.feedbacks[i+1:]...)
			return nil
		}
	}
	return &api.NotFoundError{Message: "Feedback não encontrado."}
}

func (s *stubClient) LikeFeedback(_ context.Context, id string) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["like"]++
	if s.err != nil {
		return nil, s.err
	}
	for i, fb := range s.feedbacks {
		if fb.ID == id {
			fb.Likes++
			s.feedbacks[i] = fb
			return &fb, nil
		}
	}
	return nil, &api.NotFoundError{Message: "Feedback não encontrado."}
}

func (s *stubClient) ListComments(_ context.Context, feedbackID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["list_comments"]++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Comment, len(s.comments[feedbackID]))
	copy(out, s.comments[feedbackID])
	return out, nil
}

func (s *stubClient) AddComment(_ context.Context, feedbackID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["add_comment"]++
	if s.err != nil {
		return s.err
	}
	s.nextCID++
	s.comments[feedbackID] = append(s.comments[feedbackID], models.Comment{
		ID:     fmt.Sprintf("c%d", s.nextCID),
		UserID: "u1",
		Text:   text,
	})
	return nil
}

func (s *stubClient) DeleteComment(_ context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["delete_comment"]++
	if s.err != nil {
		return s.err
	}
	for feedbackID, list := range s.comments {
		for i, c := range list {
			if c.ID == commentID {
				s.comments[feedbackID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return &api.NotFoundError{Message: "Comentário não encontrado."}
}
