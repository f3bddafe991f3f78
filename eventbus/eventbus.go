package eventbus

import (
	"context"
	"encoding/json"
)

// Topic 은 토픽의 기본 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// EnvelopeVersion 은 Event JSON 봉투의 형식 버전. Kafka 헤더 schema_version 으로 나간다.
const EnvelopeVersion = "1"

// Event 는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Publisher 는 이벤트 발행의 추상화입니다.
// Kafka 가 설정되지 않은 환경에서는 LogPublisher 가 같은 자리를 채웁니다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}
