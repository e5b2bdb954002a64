package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/feedbackboard/feedback-client/internal/models"
)

// Store holds the authentication token and the current user for the
// lifetime of the process. It is shared by every component that issues
// authorized requests; concurrent reads are safe. Nothing is persisted
// across restarts.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewStore() *Store {
	return &Store{}
}

// Login replaces the session with the given token and user.
func (s *Store) Login(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user

	log.WithFields(log.Fields{
		"prefix":  "session",
		"user_id": user.ID,
	}).Info("session established")
}

// Logout clears both token and user. All subsequent requests are
// treated as anonymous.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil

	log.WithField("prefix", "session").Info("session cleared")
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the authenticated user and whether one is set.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAnonymous reports whether no session is established.
func (s *Store) IsAnonymous() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token == ""
}

// TokenExpired reports whether the current token carries an exp claim
// in the past. The claims are parsed without signature verification;
// the server remains the authority and may still reject the token.
func (s *Store) TokenExpired() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
