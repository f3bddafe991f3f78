// Package chat holds the per-session chat state machine: the visible turn list,
// the recent conversation list and the idle/sending gate around bridge calls.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vb-capital-ai/models"
)

const Greeting = "Hello! I'm your VB Capital AI Assistant. I can help with investment analysis, portfolio insights, and market trends. How can I assist you today?"

const Apology = "Sorry, I encountered an error processing your request. Please try again."

const DefaultMaxConversations = 10

const timestampLayout = "15:04"

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrBusy         = errors.New("chat: a reply is still pending")
)

type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

// Bridge turns the visible history into one assistant turn.
type Bridge interface {
	GenerateReply(ctx context.Context, turns []models.Turn) (models.Turn, error)
}

type Options struct {
	MaxConversations int
	Now              func() time.Time
	NewID            func() string
}

func (o Options) withDefaults() Options {
	if o.MaxConversations <= 0 {
		o.MaxConversations = DefaultMaxConversations
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}

type Session struct {
	mu     sync.Mutex
	bridge Bridge
	opts   Options

	state         State
	turns         []models.Turn
	conversations []models.Conversation
	activeID      string
	lastActive    time.Time
}

// Snapshot is a copy of the session state safe to hand out.
type Snapshot struct {
	State                State                 `json:"state"`
	Turns                []models.Turn         `json:"turns"`
	Conversations        []models.Conversation `json:"conversations"`
	ActiveConversationID string                `json:"active_conversation_id,omitempty"`
}

// SubmitResult describes one settled exchange. Failed exchanges carry the apology
// turn in Reply and the bridge error in Cause.
type SubmitResult struct {
	UserTurn     models.Turn
	Reply        models.Turn
	Failed       bool
	Cause        error
	Conversation *models.Conversation
	Created      bool
}

func NewSession(bridge Bridge, opts Options) *Session {
	s := &Session{bridge: bridge, opts: opts.withDefaults(), state: StateIdle}
	s.turns = []models.Turn{s.greeting()}
	s.lastActive = s.opts.Now()
	return s
}

func (s *Session) greeting() models.Turn {
	return models.Turn{Role: models.RoleAssistant, Content: Greeting, Timestamp: s.stamp()}
}

func (s *Session) stamp() string {
	return s.opts.Now().Format(timestampLayout)
}

// StartNewConversation resets the visible turns to the greeting and clears the active conversation.
func (s *Session) StartNewConversation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSending {
		return ErrBusy
	}
	s.activeID = ""
	s.turns = []models.Turn{s.greeting()}
	s.lastActive = s.opts.Now()
	return nil
}

// SelectConversation shows the stored turns of id. Unknown ids are ignored and report false.
func (s *Session) SelectConversation(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSending {
		return false, ErrBusy
	}
	s.lastActive = s.opts.Now()
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.activeID = id
	s.turns = models.CloneTurns(s.conversations[idx].Turns)
	return true, nil
}

// Submit sends text through the bridge. Blank text and submits while a reply is
// pending are no-ops reported as ErrEmptyMessage and ErrBusy.
func (s *Session) Submit(ctx context.Context, text string) (SubmitResult, error) {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return SubmitResult{}, ErrEmptyMessage
	}
	if s.state == StateSending {
		s.mu.Unlock()
		return SubmitResult{}, ErrBusy
	}

	userTurn := models.Turn{Role: models.RoleUser, Content: text, Timestamp: s.stamp()}
	s.turns = append(s.turns, userTurn)
	history := models.CloneTurns(s.turns)
	s.state = StateSending
	s.lastActive = s.opts.Now()
	s.mu.Unlock()

	reply, err := s.bridge.GenerateReply(ctx, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.lastActive = s.opts.Now()

	result := SubmitResult{UserTurn: userTurn}
	if err != nil {
		result.Failed = true
		result.Cause = err
		result.Reply = models.Turn{Role: models.RoleAssistant, Content: Apology, Timestamp: s.stamp()}
		s.turns = append(s.turns, result.Reply)
		return result, nil
	}

	result.Reply = models.Turn{Role: models.RoleAssistant, Content: reply.Content, Timestamp: s.stamp()}
	s.turns = append(s.turns, result.Reply)

	if s.activeID != "" {
		if idx := s.indexOf(s.activeID); idx >= 0 {
			s.conversations[idx].Turns = models.CloneTurns(s.turns)
			s.conversations[idx].LastActivity = models.LastActivityJustNow
			conv := s.conversations[idx].Clone()
			result.Conversation = &conv
		}
		return result, nil
	}

	conv := models.Conversation{
		ID:           s.opts.NewID(),
		Title:        Title(text),
		LastActivity: models.LastActivityJustNow,
		Turns:        models.CloneTurns(s.turns),
		CreatedAt:    s.opts.Now(),
	}
	s.conversations = append([]models.Conversation{conv}, s.conversations...)
	if len(s.conversations) > s.opts.MaxConversations {
		s.conversations = s.conversations[:s.opts.MaxConversations]
	}
	s.activeID = conv.ID

	created := conv.Clone()
	result.Conversation = &created
	result.Created = true
	return result, nil
}

func (s *Session) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	convs := make([]models.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		convs[i] = c.Clone()
	}
	return Snapshot{
		State:                s.state,
		Turns:                models.CloneTurns(s.turns),
		Conversations:        convs,
		ActiveConversationID: s.activeID,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the visible turn list.
func (s *Session) Turns() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneTurns(s.turns)
}

// LastActive is the time of the last operation on the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Suggestions returns recent questions from stored conversations or the fixed popular questions.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Suggestions(s.conversations)
}
