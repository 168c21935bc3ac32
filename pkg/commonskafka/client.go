// Package commonskafka is the broker client shared by all marketplace
// services: publish, batch publish, subscribe and topic administration with
// consistent envelope serialization, header injection and idempotent
// producer configuration.
//
// Producer, consumers and admin are independent capabilities: each is
// initialized lazily on first use and cached for reuse. There is no global
// "connected" state.
package commonskafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const flushTimeoutMs = 15000

// Client is a façade over the broker. Safe for concurrent use: capability
// initialization is check-cache-or-create under a single lock, so two
// callers racing on the same consumer group share one connection.
type Client struct {
	conf    Conf
	log     *zap.Logger
	tracing *messageTracer

	mu        sync.Mutex
	producer  kafkaProducer
	consumers map[string]kafkaConsumer
	admin     kafkaAdmin

	newProducer producerFactory
	newConsumer consumerFactory
	newAdmin    adminFactory
}

// NewClient validates the configuration and returns a client. No broker
// connection is opened until a capability is first used.
func NewClient(conf Conf, log *zap.Logger) (*Client, error) {
	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kafka configuration: %w", err)
	}
	return &Client{
		conf:        conf,
		log:         log,
		tracing:     newMessageTracer(),
		consumers:   make(map[string]kafkaConsumer),
		newProducer: newConfluentProducer,
		newConsumer: newConfluentConsumer,
		newAdmin:    newConfluentAdmin,
	}, nil
}

// Publish serializes the envelope and sends it to the topic. The message
// key defaults to the envelope's event id so all events of one entity land
// on one partition. The active trace context is injected into the message
// headers. Delivery is confirmed before returning.
func (c *Client) Publish(ctx context.Context, msg ProducerMessage) error {
	p, err := c.ensureProducer()
	if err != nil {
		return err
	}

	km, err := buildMessage(msg)
	if err != nil {
		return err
	}

	ctx, span := c.tracing.startProducerSpan(ctx, msg.Topic, string(km.Key))
	defer span.End()
	c.tracing.injectContext(ctx, km)

	deliveryChan := make(chan kafka.Event, 1)
	if err := p.Produce(km, deliveryChan); err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", msg.Topic, err)
	}
	return awaitDeliveries(ctx, deliveryChan, 1)
}

// PublishBatch groups the messages by target topic and sends them in one
// batched operation, preserving input order within each topic group. Header
// injection per message is identical to Publish. Nothing is sent if any
// message fails to assemble.
func (c *Client) PublishBatch(ctx context.Context, msgs []ProducerMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	p, err := c.ensureProducer()
	if err != nil {
		return err
	}

	groups, err := groupByTopic(msgs)
	if err != nil {
		return err
	}

	deliveryChan := make(chan kafka.Event, len(msgs))
	for topic, batch := range groups {
		for _, km := range batch {
			c.tracing.injectContext(ctx, km)
			if err := p.Produce(km, deliveryChan); err != nil {
				return fmt.Errorf("failed to send batch message to topic %s: %w", topic, err)
			}
		}
	}
	return awaitDeliveries(ctx, deliveryChan, len(msgs))
}

// groupByTopic assembles all broker messages up front and partitions them
// by topic, keeping input order inside each group.
func groupByTopic(msgs []ProducerMessage) (map[string][]*kafka.Message, error) {
	built := make([]*kafka.Message, 0, len(msgs))
	for _, msg := range msgs {
		km, err := buildMessage(msg)
		if err != nil {
			return nil, err
		}
		built = append(built, km)
	}
	return lo.GroupBy(built, func(km *kafka.Message) string {
		return *km.TopicPartition.Topic
	}), nil
}

func awaitDeliveries(ctx context.Context, deliveryChan chan kafka.Event, count int) error {
	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-deliveryChan:
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				return fmt.Errorf("delivery failed for topic %s: %w", *m.TopicPartition.Topic, m.TopicPartition.Error)
			}
		}
	}
	return nil
}

// Subscribe starts consuming the topics on the consumer for the resolved
// group id, reusing the cached consumer if one exists for that group. New
// groups read from the current end of the log. The run loop exits when ctx
// is cancelled or when the handler returns an error; a handler error leaves
// the offset uncommitted so the broker redelivers. No local retry, backoff
// or DLQ routing happens here. Trace context carried in the message headers
// is restored into the handler's context.
func (c *Client) Subscribe(ctx context.Context, topicNames []string, handler Handler, groupID string) error {
	group := c.resolveGroupID(groupID)
	consumer, err := c.ensureConsumer(group)
	if err != nil {
		return err
	}

	if err := consumer.SubscribeTopics(topicNames, nil); err != nil {
		return fmt.Errorf("failed to subscribe to topics %v: %w", topicNames, err)
	}

	go c.run(ctx, consumer, group, handler)
	return nil
}

func (c *Client) run(ctx context.Context, consumer kafkaConsumer, group string, handler Handler) {
	c.log.Info("kafka consumer started", zap.String("group", group))

	for {
		select {
		case <-ctx.Done():
			c.log.Info("kafka consumer stopped", zap.String("group", group))
			return
		default:
		}

		m, err := consumer.ReadMessage(c.conf.PollTimeout)
		if err != nil {
			var kafkaErr kafka.Error
			if errors.As(err, &kafkaErr) && kafkaErr.IsTimeout() {
				continue
			}
			c.log.Error("failed to read message", zap.String("group", group), zap.Error(err))
			continue
		}

		msg, err := consumedMessage(m)
		if err != nil {
			c.log.Error("failed to decode message",
				zap.String("group", group),
				zap.String("partition", m.TopicPartition.String()),
				zap.Error(err))
			return
		}

		msgCtx := c.tracing.extractContext(ctx, m)
		msgCtx, span := c.tracing.startConsumerSpan(msgCtx, m)

		if err := handler(msgCtx, msg); err != nil {
			// Fatal to this run loop. The offset stays uncommitted; the
			// broker's consumer-group machinery governs redelivery.
			span.RecordError(err)
			span.End()
			c.log.Error("message handler failed",
				zap.String("group", group),
				zap.String("topic", msg.Topic),
				zap.String("eventId", msg.Value.EventID),
				zap.Error(err))
			return
		}
		span.End()

		if _, err := consumer.CommitMessage(m); err != nil {
			c.log.Error("failed to commit message",
				zap.String("group", group),
				zap.String("topic", msg.Topic),
				zap.Error(err))
		}
	}
}

func (c *Client) resolveGroupID(groupID string) string {
	if groupID != "" {
		return groupID
	}
	if c.conf.GroupID != "" {
		return c.conf.GroupID
	}
	return c.conf.ClientID + "-group"
}

// Disconnect releases the producer, all cached consumers and the admin
// client, in that order. Idempotent: calling it twice or before any
// capability was used is a no-op.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.producer != nil {
		c.producer.Flush(flushTimeoutMs)
		c.producer.Close()
		c.producer = nil
	}

	for group, consumer := range c.consumers {
		if err := consumer.Close(); err != nil {
			c.log.Error("failed to close consumer", zap.String("group", group), zap.Error(err))
		}
		delete(c.consumers, group)
	}

	if c.admin != nil {
		c.admin.Close()
		c.admin = nil
	}
}

func (c *Client) ensureProducer() (kafkaProducer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.producer != nil {
		return c.producer, nil
	}
	p, err := c.newProducer(c.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	c.producer = p
	return p, nil
}

func (c *Client) ensureConsumer(groupID string) (kafkaConsumer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if consumer, ok := c.consumers[groupID]; ok {
		return consumer, nil
	}
	consumer, err := c.newConsumer(c.conf, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer for group %s: %w", groupID, err)
	}
	c.consumers[groupID] = consumer
	return consumer, nil
}

func (c *Client) ensureAdmin() (kafkaAdmin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.admin != nil {
		return c.admin, nil
	}
	admin, err := c.newAdmin(c.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	c.admin = admin
	return admin, nil
}
