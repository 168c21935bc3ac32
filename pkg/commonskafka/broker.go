package commonskafka

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// The interfaces below are the slice of the confluent client this package
// uses. Factories are fields on Client so tests can substitute mocks.

type kafkaProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type kafkaConsumer interface {
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	CommitMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
	Close() error
}

type kafkaAdmin interface {
	CreateTopics(ctx context.Context, topics []kafka.TopicSpecification, options ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error)
	DeleteTopics(ctx context.Context, topics []string, options ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error)
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	ListConsumerGroups(ctx context.Context, options ...kafka.ListConsumerGroupsAdminOption) (kafka.ListConsumerGroupsResult, error)
	Close()
}

type (
	producerFactory func(conf Conf) (kafkaProducer, error)
	consumerFactory func(conf Conf, groupID string) (kafkaConsumer, error)
	adminFactory    func(conf Conf) (kafkaAdmin, error)
)

// newConfluentProducer builds a producer configured for idempotent, ordered
// delivery: one in-flight request per connection and a bounded retry
// ceiling, so broker-side retries cannot duplicate or reorder writes.
func newConfluentProducer(conf Conf) (kafkaProducer, error) {
	cm := &kafka.ConfigMap{
		"bootstrap.servers":                     conf.Brokers,
		"client.id":                             conf.ClientID,
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"message.send.max.retries":              conf.MaxRetries,
		"retry.backoff.ms":                      int(conf.RetryBackoff.Milliseconds()),
		"socket.connection.setup.timeout.ms":    int(conf.ConnectionTimeout.Milliseconds()),
	}
	conf.applySecurity(cm)
	return kafka.NewProducer(cm)
}

// newConfluentConsumer builds a consumer for the given group. New groups
// start from the end of the log; offsets are committed manually after the
// handler succeeds.
func newConfluentConsumer(conf Conf, groupID string) (kafkaConsumer, error) {
	cm := &kafka.ConfigMap{
		"bootstrap.servers":         conf.Brokers,
		"client.id":                 conf.ClientID,
		"group.id":                  groupID,
		"auto.offset.reset":         "latest",
		"enable.auto.commit":        false,
		"session.timeout.ms":        int(conf.SessionTimeout.Milliseconds()),
		"heartbeat.interval.ms":     3000,
		"max.partition.fetch.bytes": 1048576,
		"fetch.max.bytes":           10485760,
	}
	conf.applySecurity(cm)
	return kafka.NewConsumer(cm)
}

func newConfluentAdmin(conf Conf) (kafkaAdmin, error) {
	cm := &kafka.ConfigMap{
		"bootstrap.servers": conf.Brokers,
		"client.id":         conf.ClientID,
	}
	conf.applySecurity(cm)
	return kafka.NewAdminClient(cm)
}
