package commonskafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lokalmarket/marketplace-commons/pkg/event"
)

// mockProducer is a mock implementation of kafkaProducer.
type mockProducer struct {
	mu       sync.Mutex
	produced []*kafka.Message

	produceFunc func(msg *kafka.Message, deliveryChan chan kafka.Event) error
	flushed     int
	closed      bool
}

func (m *mockProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.produceFunc != nil {
		return m.produceFunc(msg, deliveryChan)
	}
	m.produced = append(m.produced, msg)
	// ack immediately, like a healthy broker
	if deliveryChan != nil {
		deliveryChan <- &kafka.Message{TopicPartition: msg.TopicPartition}
	}
	return nil
}

func (m *mockProducer) Flush(timeoutMs int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushed++
	return 0
}

func (m *mockProducer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// mockConsumer is a mock implementation of kafkaConsumer. ReadMessage pops
// from a queue and reports timeouts once drained.
type mockConsumer struct {
	mu         sync.Mutex
	queue      []*kafka.Message
	subscribed []string
	committed  []*kafka.Message
	closed     bool

	subscribeErr error
}

func (m *mockConsumer) SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subscribeErr != nil {
		return m.subscribeErr
	}
	m.subscribed = topics
	return nil
}

func (m *mockConsumer) ReadMessage(timeout time.Duration) (*kafka.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, kafka.NewError(kafka.ErrTimedOut, "timed out", false)
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	return msg, nil
}

func (m *mockConsumer) CommitMessage(msg *kafka.Message) ([]kafka.TopicPartition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, msg)
	return []kafka.TopicPartition{msg.TopicPartition}, nil
}

func (m *mockConsumer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConsumer) commitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.committed)
}

// mockAdmin is a mock implementation of kafkaAdmin.
type mockAdmin struct {
	createTopicsFunc func(topics []kafka.TopicSpecification) ([]kafka.TopicResult, error)
	metadata         *kafka.Metadata
	metadataErr      error
	closed           bool
}

func (m *mockAdmin) CreateTopics(ctx context.Context, topics []kafka.TopicSpecification, options ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error) {
	if m.createTopicsFunc != nil {
		return m.createTopicsFunc(topics)
	}
	results := make([]kafka.TopicResult, 0, len(topics))
	for _, topic := range topics {
		results = append(results, kafka.TopicResult{Topic: topic.Topic})
	}
	return results, nil
}

func (m *mockAdmin) DeleteTopics(ctx context.Context, topics []string, options ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error) {
	results := make([]kafka.TopicResult, 0, len(topics))
	for _, topic := range topics {
		results = append(results, kafka.TopicResult{Topic: topic})
	}
	return results, nil
}

func (m *mockAdmin) GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error) {
	if m.metadataErr != nil {
		return nil, m.metadataErr
	}
	return m.metadata, nil
}

func (m *mockAdmin) ListConsumerGroups(ctx context.Context, options ...kafka.ListConsumerGroupsAdminOption) (kafka.ListConsumerGroupsResult, error) {
	return kafka.ListConsumerGroupsResult{}, nil
}

func (m *mockAdmin) Close() {
	m.closed = true
}

func testClient(t *testing.T) (*Client, *mockProducer, *mockConsumer, *mockAdmin) {
	t.Helper()

	client, err := NewClient(Conf{ClientID: "test-service", Brokers: "localhost:9092", PollTimeout: 10 * time.Millisecond}, zap.NewNop())
	require.NoError(t, err)

	producer := &mockProducer{}
	consumer := &mockConsumer{}
	admin := &mockAdmin{}
	client.newProducer = func(conf Conf) (kafkaProducer, error) { return producer, nil }
	client.newConsumer = func(conf Conf, groupID string) (kafkaConsumer, error) { return consumer, nil }
	client.newAdmin = func(conf Conf) (kafkaAdmin, error) { return admin, nil }

	return client, producer, consumer, admin
}

func TestNewClient_InvalidConf(t *testing.T) {
	_, err := NewClient(Conf{}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kafka configuration")
}

func TestClient_Publish(t *testing.T) {
	t.Run("sends message and confirms delivery", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		e := testEnvelope()

		err := client.Publish(context.Background(), ProducerMessage{Topic: "marketplace.user.events", Value: e})

		require.NoError(t, err)
		require.Len(t, producer.produced, 1)
		assert.Equal(t, e.EventID, string(producer.produced[0].Key))
	})

	t.Run("reports delivery failure", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		deliveryErr := errors.New("broker down")
		producer.produceFunc = func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
			failed := *msg
			failed.TopicPartition.Error = deliveryErr
			deliveryChan <- &failed
			return nil
		}

		err := client.Publish(context.Background(), ProducerMessage{Topic: "marketplace.user.events", Value: testEnvelope()})

		require.Error(t, err)
		assert.ErrorIs(t, err, deliveryErr)
	})

	t.Run("reports produce error", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		producer.produceFunc = func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
			return errors.New("queue full")
		}

		err := client.Publish(context.Background(), ProducerMessage{Topic: "marketplace.user.events", Value: testEnvelope()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message")
	})

	t.Run("producer factory failure", func(t *testing.T) {
		client, _, _, _ := testClient(t)
		client.newProducer = func(conf Conf) (kafkaProducer, error) { return nil, errors.New("no broker") }

		err := client.Publish(context.Background(), ProducerMessage{Topic: "t", Value: testEnvelope()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create producer")
	})

	t.Run("producer is created once and cached", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		calls := 0
		client.newProducer = func(conf Conf) (kafkaProducer, error) {
			calls++
			return producer, nil
		}

		require.NoError(t, client.Publish(context.Background(), ProducerMessage{Topic: "t", Value: testEnvelope()}))
		require.NoError(t, client.Publish(context.Background(), ProducerMessage{Topic: "t", Value: testEnvelope()}))

		assert.Equal(t, 1, calls)
	})
}

func TestClient_PublishBatch(t *testing.T) {
	t.Run("empty batch is a no-op", func(t *testing.T) {
		client, producer, _, _ := testClient(t)

		err := client.PublishBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, producer.produced)
	})

	t.Run("publishes all messages and awaits every delivery", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		msgs := []ProducerMessage{
			{Topic: "marketplace.user.events", Value: testEnvelope()},
			{Topic: "marketplace.chat.events", Value: testEnvelope()},
			{Topic: "marketplace.user.events", Value: testEnvelope()},
		}

		err := client.PublishBatch(context.Background(), msgs)

		require.NoError(t, err)
		assert.Len(t, producer.produced, 3)
	})

	t.Run("nothing is sent when one message cannot be assembled", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		msgs := []ProducerMessage{
			{Topic: "marketplace.user.events", Value: testEnvelope()},
			{Topic: "marketplace.user.events"}, // no value
		}

		err := client.PublishBatch(context.Background(), msgs)

		require.Error(t, err)
		assert.Empty(t, producer.produced)
	})
}

func TestGroupByTopic_PreservesOrderWithinGroup(t *testing.T) {
	first := testEnvelope()
	second := testEnvelope()
	third := testEnvelope()
	msgs := []ProducerMessage{
		{Topic: "marketplace.user.events", Value: first},
		{Topic: "marketplace.chat.events", Value: second},
		{Topic: "marketplace.user.events", Value: third},
	}

	groups, err := groupByTopic(msgs)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	userBatch := groups["marketplace.user.events"]
	require.Len(t, userBatch, 2)
	assert.Equal(t, first.EventID, string(userBatch[0].Key))
	assert.Equal(t, third.EventID, string(userBatch[1].Key))
	require.Len(t, groups["marketplace.chat.events"], 1)
}

func TestClient_Subscribe(t *testing.T) {
	buildBrokerMessage := func(t *testing.T, topic string, e event.Publishable) *kafka.Message {
		t.Helper()
		value, err := e.Serialize()
		require.NoError(t, err)
		return &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: 0, Offset: 7},
			Value:          value,
		}
	}

	t.Run("handled message is committed", func(t *testing.T) {
		client, _, consumer, _ := testClient(t)
		consumer.queue = []*kafka.Message{buildBrokerMessage(t, "marketplace.user.events", testEnvelope())}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var handled ConsumerMessage
		done := make(chan struct{})
		err := client.Subscribe(ctx, []string{"marketplace.user.events"}, func(ctx context.Context, msg ConsumerMessage) error {
			handled = msg
			close(done)
			return nil
		}, "group-a")
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked")
		}

		assert.Eventually(t, func() bool { return consumer.commitCount() == 1 }, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, "marketplace.user.events", handled.Topic)
		assert.Equal(t, []string{"marketplace.user.events"}, consumer.subscribed)
	})

	t.Run("handler error leaves offset uncommitted", func(t *testing.T) {
		client, _, consumer, _ := testClient(t)
		consumer.queue = []*kafka.Message{buildBrokerMessage(t, "marketplace.user.events", testEnvelope())}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan struct{})
		err := client.Subscribe(ctx, []string{"marketplace.user.events"}, func(ctx context.Context, msg ConsumerMessage) error {
			close(done)
			return errors.New("downstream unavailable")
		}, "group-a")
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked")
		}

		// give the loop a moment to (incorrectly) commit
		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, consumer.commitCount())
	})

	t.Run("subscribe failure is returned", func(t *testing.T) {
		client, _, consumer, _ := testClient(t)
		consumer.subscribeErr = errors.New("unknown topic")

		err := client.Subscribe(context.Background(), []string{"nope"}, func(ctx context.Context, msg ConsumerMessage) error {
			return nil
		}, "group-a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to subscribe")
	})

	t.Run("consumers are cached per group", func(t *testing.T) {
		client, _, consumer, _ := testClient(t)
		calls := 0
		client.newConsumer = func(conf Conf, groupID string) (kafkaConsumer, error) {
			calls++
			return consumer, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handler := func(ctx context.Context, msg ConsumerMessage) error { return nil }

		require.NoError(t, client.Subscribe(ctx, []string{"a"}, handler, "group-a"))
		require.NoError(t, client.Subscribe(ctx, []string{"b"}, handler, "group-a"))
		require.NoError(t, client.Subscribe(ctx, []string{"c"}, handler, "group-b"))

		assert.Equal(t, 2, calls)
	})
}

func TestClient_ResolveGroupID(t *testing.T) {
	client, err := NewClient(Conf{ClientID: "search-service", Brokers: "localhost:9092"}, zap.NewNop())
	require.NoError(t, err)

	t.Run("explicit group wins", func(t *testing.T) {
		assert.Equal(t, "custom", client.resolveGroupID("custom"))
	})

	t.Run("falls back to configured group", func(t *testing.T) {
		client.conf.GroupID = "configured-group"
		defer func() { client.conf.GroupID = "" }()

		assert.Equal(t, "configured-group", client.resolveGroupID(""))
	})

	t.Run("derives from client id as last resort", func(t *testing.T) {
		assert.Equal(t, "search-service-group", client.resolveGroupID(""))
	})
}

func TestClient_Disconnect(t *testing.T) {
	t.Run("releases all capabilities", func(t *testing.T) {
		client, producer, consumer, admin := testClient(t)

		// touch every capability
		require.NoError(t, client.Publish(context.Background(), ProducerMessage{Topic: "t", Value: testEnvelope()}))
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, client.Subscribe(ctx, []string{"t"}, func(ctx context.Context, msg ConsumerMessage) error { return nil }, "g"))
		cancel()
		admin.metadata = &kafka.Metadata{}
		_, err := client.ListTopics(context.Background())
		require.NoError(t, err)

		client.Disconnect()

		assert.Equal(t, 1, producer.flushed)
		assert.True(t, producer.closed)
		assert.True(t, consumer.closed)
		assert.True(t, admin.closed)
	})

	t.Run("idempotent", func(t *testing.T) {
		client, producer, _, _ := testClient(t)
		require.NoError(t, client.Publish(context.Background(), ProducerMessage{Topic: "t", Value: testEnvelope()}))

		client.Disconnect()
		client.Disconnect()

		assert.Equal(t, 1, producer.flushed)
	})

	t.Run("no-op before first use", func(t *testing.T) {
		client, _, _, _ := testClient(t)

		client.Disconnect()
	})
}
