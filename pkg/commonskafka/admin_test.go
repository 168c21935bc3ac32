package commonskafka

import (
	"context"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateTopics(t *testing.T) {
	t.Run("applies partition and replication defaults", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		var captured []kafka.TopicSpecification
		admin.createTopicsFunc = func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error) {
			captured = topics
			return []kafka.TopicResult{{Topic: "a"}, {Topic: "b"}}, nil
		}

		err := client.CreateTopics(context.Background(), []TopicSpec{
			{Topic: "a"},
			{Topic: "b", NumPartitions: 6, ReplicationFactor: 3, ConfigEntries: map[string]string{"retention.ms": "1000"}},
		})

		require.NoError(t, err)
		require.Len(t, captured, 2)
		assert.Equal(t, 3, captured[0].NumPartitions)
		assert.Equal(t, 1, captured[0].ReplicationFactor)
		assert.Equal(t, 6, captured[1].NumPartitions)
		assert.Equal(t, 3, captured[1].ReplicationFactor)
		assert.Equal(t, "1000", captured[1].Config["retention.ms"])
	})

	t.Run("existing topics are not an error", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.createTopicsFunc = func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error) {
			return []kafka.TopicResult{
				{Topic: "a", Error: kafka.NewError(kafka.ErrTopicAlreadyExists, "exists", false)},
			}, nil
		}

		err := client.CreateTopics(context.Background(), []TopicSpec{{Topic: "a"}})

		assert.NoError(t, err)
	})

	t.Run("other per-topic failures are reported", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.createTopicsFunc = func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error) {
			return []kafka.TopicResult{
				{Topic: "a", Error: kafka.NewError(kafka.ErrInvalidReplicationFactor, "bad rf", false)},
			}, nil
		}

		err := client.CreateTopics(context.Background(), []TopicSpec{{Topic: "a"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create topic a")
	})
}

func TestClient_ListTopics(t *testing.T) {
	t.Run("returns sorted names", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.metadata = &kafka.Metadata{Topics: map[string]kafka.TopicMetadata{
			"zeta":  {},
			"alpha": {},
			"mid":   {},
		}}

		names, err := client.ListTopics(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
	})

	t.Run("metadata failure", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.metadataErr = errors.New("broker unreachable")

		_, err := client.ListTopics(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch topic metadata")
	})
}

func TestClient_HealthCheck(t *testing.T) {
	t.Run("healthy broker", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.metadata = &kafka.Metadata{}

		assert.True(t, client.HealthCheck(context.Background()))
	})

	t.Run("metadata failure converts to false", func(t *testing.T) {
		client, _, _, admin := testClient(t)
		admin.metadataErr = errors.New("broker unreachable")

		assert.False(t, client.HealthCheck(context.Background()))
	})

	t.Run("admin creation failure converts to false", func(t *testing.T) {
		client, _, _, _ := testClient(t)
		client.newAdmin = func(conf Conf) (kafkaAdmin, error) { return nil, errors.New("no broker") }

		assert.False(t, client.HealthCheck(context.Background()))
	})
}
