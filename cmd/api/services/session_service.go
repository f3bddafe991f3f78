package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"vb-capital-ai/chat"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/config"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService 는 서버 측 chat.Session 들을 메모리에 보관한다.
// 재시작하면 모든 세션과 대화가 사라진다.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*chat.Session

	bridge  chat.Bridge
	idleTTL time.Duration
	opts    chat.Options
	newID   func() string
}

func NewSessionService(bridge chat.Bridge, cfg config.ChatConfig) *SessionService {
	return &SessionService{
		sessions: make(map[string]*chat.Session),
		bridge:   bridge,
		idleTTL:  cfg.SessionIdleTTL,
		opts:     chat.Options{MaxConversations: cfg.MaxConversations, Now: time.Now},
		newID:    func() string { return uuid.New().String() },
	}
}

// Create starts a session showing only the greeting. Sessions idle longer than
// the configured TTL are dropped first.
func (s *SessionService) Create() (string, *chat.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	id := s.newID()
	sess := chat.NewSession(s.bridge, s.opts)
	s.sessions[id] = sess

	logger.InfoWithFields("chat session created", logger.Fields{
		"session_id": id,
		"sessions":   len(s.sessions),
	})
	return id, sess
}

func (s *SessionService) Get(id string) (*chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// End destroys the session together with its conversations.
func (s *SessionService) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	logger.InfoWithFields("chat session ended", logger.Fields{"session_id": id})
	return nil
}

func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sending 중인 세션은 TTL 이 지나도 지우지 않는다.
func (s *SessionService) sweepLocked() {
	if s.idleTTL <= 0 {
		return
	}
	now := s.opts.Now()
	for id, sess := range s.sessions {
		if sess.State() == chat.StateSending {
			continue
		}
		if now.Sub(sess.LastActive()) > s.idleTTL {
			delete(s.sessions, id)
			logger.DebugWithFields("chat session expired", logger.Fields{"session_id": id})
		}
	}
}
