package commonskafka

import (
	"context"
	"fmt"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

const (
	defaultPartitions        = 3
	defaultReplicationFactor = 1
)

// TopicSpec describes a topic to create.
type TopicSpec struct {
	Topic             string
	NumPartitions     int               // defaults to 3
	ReplicationFactor int               // defaults to 1
	ConfigEntries     map[string]string // broker config, e.g. "retention.ms"
}

// CreateTopics creates the given topics. Topics that already exist are not
// an error.
func (c *Client) CreateTopics(ctx context.Context, specs []TopicSpec) error {
	admin, err := c.ensureAdmin()
	if err != nil {
		return err
	}

	topics := make([]kafka.TopicSpecification, 0, len(specs))
	for _, spec := range specs {
		partitions := spec.NumPartitions
		if partitions == 0 {
			partitions = defaultPartitions
		}
		replication := spec.ReplicationFactor
		if replication == 0 {
			replication = defaultReplicationFactor
		}
		topics = append(topics, kafka.TopicSpecification{
			Topic:             spec.Topic,
			NumPartitions:     partitions,
			ReplicationFactor: replication,
			Config:            spec.ConfigEntries,
		})
	}

	results, err := admin.CreateTopics(ctx, topics, kafka.SetAdminOperationTimeout(c.conf.RequestTimeout))
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}
	for _, result := range results {
		code := result.Error.Code()
		if code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
		}
	}
	return nil
}

// ListTopics queries the broker for all topic names, sorted. Metadata is
// never cached locally.
func (c *Client) ListTopics(ctx context.Context) ([]string, error) {
	admin, err := c.ensureAdmin()
	if err != nil {
		return nil, err
	}

	metadata, err := admin.GetMetadata(nil, true, int(c.conf.RequestTimeout.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic metadata: %w", err)
	}

	names := make([]string, 0, len(metadata.Topics))
	for name := range metadata.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteTopics deletes the given topics.
func (c *Client) DeleteTopics(ctx context.Context, topicNames []string) error {
	admin, err := c.ensureAdmin()
	if err != nil {
		return err
	}

	results, err := admin.DeleteTopics(ctx, topicNames, kafka.SetAdminOperationTimeout(c.conf.RequestTimeout))
	if err != nil {
		return fmt.Errorf("failed to delete topics: %w", err)
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError {
			return fmt.Errorf("failed to delete topic %s: %w", result.Topic, result.Error)
		}
	}
	return nil
}

// ConsumerGroups lists the consumer groups known to the broker.
func (c *Client) ConsumerGroups(ctx context.Context) ([]kafka.ConsumerGroupListing, error) {
	admin, err := c.ensureAdmin()
	if err != nil {
		return nil, err
	}

	result, err := admin.ListConsumerGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumer groups: %w", err)
	}
	return result.Valid, nil
}

// HealthCheck reports whether the admin capability can reach the broker and
// list topics. It never returns an error: any failure is logged and
// converted to false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if _, err := c.ListTopics(ctx); err != nil {
		c.log.Warn("kafka health check failed", zap.Error(err))
		return false
	}
	return true
}
