package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"vb-capital-ai/internal/logger"
)

const (
	clientID       = "vb-capital-ai-api"
	flushTimeoutMs = 5000
	headerType     = "event_type"
	headerSchema   = "schema_version"
)

// KafkaEventBus publishes feedback events through a confluent-kafka-go producer.
// Publish waits for the broker acknowledgement of each message.
type KafkaEventBus struct {
	producer *kafka.Producer
}

func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"client.id":          clientID,
		"acks":               "all",
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	bus := &KafkaEventBus{producer: p}
	go bus.watch()
	return bus, nil
}

// watch 는 deliveryChan 없이 보낸 메시지의 실패 보고와 클라이언트 오류를 로그로 남긴다.
func (k *KafkaEventBus) watch() {
	for e := range k.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				logger.ErrorWithFields("kafka delivery failed", logger.Fields{
					"topic_partition": ev.TopicPartition.String(),
					"error":           ev.TopicPartition.Error.Error(),
				})
			}
		case kafka.Error:
			logger.ErrorWithFields("kafka client error", logger.Fields{
				"code":  ev.Code().String(),
				"error": ev.Error(),
			})
		}
	}
}

func (k *KafkaEventBus) Close() {
	if k.producer == nil {
		return
	}
	if remaining := k.producer.Flush(flushTimeoutMs); remaining > 0 {
		logger.WarnWithFields("kafka flush left messages", logger.Fields{"remaining": remaining})
	}
	k.producer.Close()
	logger.Log.Info("kafka producer closed")
}

func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	delivery := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.ID),
		Value:          data,
		Headers: []kafka.Header{
			{Key: headerType, Value: []byte(event.Type)},
			{Key: headerSchema, Value: []byte(EnvelopeVersion)},
		},
	}
	if err := k.producer.Produce(msg, delivery); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	select {
	case ev := <-delivery:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver to %s: %w", topic, m.TopicPartition.Error)
		}
		logger.DebugWithFields("feedback event delivered", logger.Fields{
			"topic":     topic,
			"partition": m.TopicPartition.Partition,
			"offset":    m.TopicPartition.Offset.String(),
			"event_id":  event.ID,
		})
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
