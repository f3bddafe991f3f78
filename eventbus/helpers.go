package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"vb-capital-ai/internal/logger"
)

// NewJSONEvent 생성: payload 를 JSON 으로 인코딩하여 Event 를 구성합니다.
// id 가 빈 문자열이면 uuid 를 생성합니다.
func NewJSONEvent(id, eventType string, payload any) (Event, error) {
	if id == "" {
		id = uuid.New().String()
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("payload marshal 실패: %w", err)
	}
	return Event{
		ID:      id,
		Type:    eventType,
		Payload: b,
	}, nil
}

// DecodeJSON 은 Event.Payload 를 제네릭 타입으로 언마샬합니다.
func DecodeJSON[T any](evt Event) (T, error) {
	var out T
	if err := json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("payload unmarshal 실패: %w", err)
	}
	return out, nil
}

// LogPublisher 는 브로커 없이 이벤트를 로그로만 남긴다.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, topic string, event Event) error {
	logger.InfoWithFields("event published", logger.Fields{
		"topic":      topic,
		"event_id":   event.ID,
		"event_type": event.Type,
		"payload":    string(event.Payload),
	})
	return nil
}

func (LogPublisher) Close() {}
