package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vb-capital-ai/cmd/api/trace"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/eventbus"
	"vb-capital-ai/events"
)

var (
	ErrInvalidFeedback = errors.New("feedback must be \"helpful\" or \"not-helpful\"")
	ErrEmptyContent    = errors.New("content must not be empty")
)

type FeedbackInput struct {
	SessionID string
	Feedback  string
	Content   string
}

// FeedbackService 는 답변 평가를 로그로 남기고 이벤트 버스로 발행한다.
type FeedbackService struct {
	publisher eventbus.Publisher
	topic     eventbus.Topic
	now       func() time.Time
}

func NewFeedbackService(publisher eventbus.Publisher, topic eventbus.Topic) *FeedbackService {
	if publisher == nil {
		publisher = eventbus.LogPublisher{}
	}
	return &FeedbackService{publisher: publisher, topic: topic, now: time.Now}
}

// Submit validates the feedback and publishes a chat_feedback event. It returns the event id.
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (string, error) {
	if !events.IsValidFeedback(in.Feedback) {
		return "", ErrInvalidFeedback
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", ErrEmptyContent
	}

	requestID := trace.RequestIDFromContext(ctx)
	evt := events.ChatFeedbackSubmittedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ChatFeedbackSubmitted,
			Timestamp: s.now().UTC(),
			Source:    events.SourceAPI,
			Version:   events.SchemaVersion,
		},
		RequestID: requestID,
		SessionID: in.SessionID,
		Feedback:  in.Feedback,
		Content:   in.Content,
	}

	logger.InfoWithFields("chat feedback received", logger.Fields{
		"request_id": requestID,
		"session_id": in.SessionID,
		"feedback":   in.Feedback,
	})

	msg, err := eventbus.NewJSONEvent(evt.ID, string(evt.Type), evt)
	if err != nil {
		return "", err
	}
	if err := s.publisher.Publish(ctx, s.topic.Base(), msg); err != nil {
		return "", fmt.Errorf("publish feedback event: %w", err)
	}
	return evt.ID, nil
}
