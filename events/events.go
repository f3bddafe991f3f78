package events

import (
	"time"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	ChatFeedbackSubmitted EventType = "chat.feedback_submitted"
)

// Feedback 값. 메시지 아래 좋아요/싫어요 버튼과 같다.
const (
	FeedbackHelpful    = "helpful"
	FeedbackNotHelpful = "not-helpful"
)

const (
	SourceAPI     = "api"
	SchemaVersion = "1"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// ChatFeedbackSubmittedEvent 는 assistant 답변에 대한 사용자 평가다.
type ChatFeedbackSubmittedEvent struct {
	BaseEvent
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Feedback  string `json:"feedback"`
	Content   string `json:"content"`
}

func IsValidFeedback(v string) bool {
	return v == FeedbackHelpful || v == FeedbackNotHelpful
}
