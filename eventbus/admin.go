package eventbus

import (
	"context"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// EnsureTopics creates the given topics with replication factor 1.
// Topics that already exist count as success; the other failures are joined into one error.
func EnsureTopics(ctx context.Context, brokers string, partitions int, topics ...Topic) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return fmt.Errorf("create kafka admin client: %w", err)
	}
	defer admin.Close()

	specs := make([]kafka.TopicSpecification, len(topics))
	for i, t := range topics {
		specs[i] = kafka.TopicSpecification{Topic: t.Base(), NumPartitions: partitions, ReplicationFactor: 1}
	}

	results, err := admin.CreateTopics(ctx, specs)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}

	var failed []string
	for _, r := range results {
		switch r.Error.Code() {
		case kafka.ErrNoError, kafka.ErrTopicAlreadyExists:
		default:
			failed = append(failed, fmt.Sprintf("%s: %v", r.Topic, r.Error))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("create topics: %s", strings.Join(failed, "; "))
	}
	return nil
}
