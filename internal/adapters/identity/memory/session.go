package memory

import (
	"strings"
	"sync"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
	"github.com/bnema/gigpulse/internal/pubsub"
)

// Session is an in-process sign-in state. Subscribers hear every change,
// including the empty id on logout.
type Session struct {
	mu     sync.RWMutex
	userID domain.UserID
	topic  *pubsub.Topic[domain.UserID]
}

var _ ports.IdentityProvider = (*Session)(nil)

func NewSession() *Session {
	return &Session{topic: pubsub.NewTopic[domain.UserID]()}
}

func (s *Session) Login(userID domain.UserID) {
	s.set(domain.UserID(strings.TrimSpace(string(userID))))
}

func (s *Session) Logout() {
	s.set("")
}

func (s *Session) CurrentUserID() domain.UserID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Subscribe(fn func(domain.UserID)) func() {
	return s.topic.Subscribe(fn)
}

func (s *Session) set(userID domain.UserID) {
	s.mu.Lock()
	if s.userID == userID {
		s.mu.Unlock()
		return
	}
	s.userID = userID
	s.mu.Unlock()

	s.topic.Publish(userID)
}
