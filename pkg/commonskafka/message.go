package commonskafka

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/lokalmarket/marketplace-commons/pkg/event"
)

// Reserved header names. These are always set from the envelope on publish
// and overwrite caller-supplied headers of the same name.
const (
	HeaderEventType     = "eventType"
	HeaderSource        = "source"
	HeaderCorrelationID = "correlationId"
	HeaderContentType   = "contentType"

	contentTypeJSON = "application/json"
)

// ProducerMessage is a message to publish. Key defaults to the envelope's
// event id; Partition defaults to broker-side assignment.
type ProducerMessage struct {
	Topic     string
	Key       string
	Value     event.Publishable
	Partition *int32
	Timestamp *time.Time
	Headers   map[string]string
}

// ConsumerMessage is a delivered message with its envelope deserialized and
// the broker-assigned partition and offset attached.
type ConsumerMessage struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       string
	Value     event.Raw
	Timestamp time.Time
	Headers   map[string]string
}

// Handler processes one delivered message. Returning an error is fatal to
// the consumer's run loop: the offset stays uncommitted and redelivery is
// left to the broker's consumer-group machinery.
type Handler func(ctx context.Context, msg ConsumerMessage) error

// buildMessage assembles the outgoing broker message: serialized envelope,
// defaulted key and injected reserved headers. Pure, so it is testable
// without a broker.
func buildMessage(msg ProducerMessage) (*kafka.Message, error) {
	if msg.Value == nil {
		return nil, fmt.Errorf("message for topic %s has no value", msg.Topic)
	}

	value, err := msg.Value.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event for topic %s: %w", msg.Topic, err)
	}

	meta := msg.Value.Metadata()
	key := msg.Key
	if key == "" {
		key = meta.EventID
	}

	topic := msg.Topic
	partition := kafka.PartitionAny
	if msg.Partition != nil {
		partition = *msg.Partition
	}

	out := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: partition},
		Key:            []byte(key),
		Value:          value,
		Headers:        buildHeaders(msg.Headers, meta),
	}
	if msg.Timestamp != nil {
		out.Timestamp = *msg.Timestamp
	}
	return out, nil
}

// buildHeaders merges caller headers with the four reserved ones. Caller
// headers are a base; reserved names always win. Caller headers are emitted
// in sorted key order so the result is deterministic.
func buildHeaders(custom map[string]string, meta event.Metadata) []kafka.Header {
	keys := make([]string, 0, len(custom))
	for k := range custom {
		switch k {
		case HeaderEventType, HeaderSource, HeaderCorrelationID, HeaderContentType:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafka.Header, 0, len(keys)+4)
	for _, k := range keys {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(custom[k])})
	}
	headers = append(headers,
		kafka.Header{Key: HeaderEventType, Value: []byte(meta.EventType)},
		kafka.Header{Key: HeaderSource, Value: []byte(meta.Source)},
		kafka.Header{Key: HeaderCorrelationID, Value: []byte(meta.CorrelationID)},
		kafka.Header{Key: HeaderContentType, Value: []byte(contentTypeJSON)},
	)
	return headers
}

// consumedMessage converts a delivered broker message into a
// ConsumerMessage, deserializing the envelope.
func consumedMessage(m *kafka.Message) (ConsumerMessage, error) {
	envelope, err := event.Deserialize(m.Value)
	if err != nil {
		return ConsumerMessage{}, fmt.Errorf("failed to deserialize envelope: %w", err)
	}

	topic := ""
	if m.TopicPartition.Topic != nil {
		topic = *m.TopicPartition.Topic
	}

	return ConsumerMessage{
		Topic:     topic,
		Partition: m.TopicPartition.Partition,
		Offset:    int64(m.TopicPartition.Offset),
		Key:       string(m.Key),
		Value:     envelope,
		Timestamp: m.Timestamp,
		Headers:   parseHeaders(m.Headers),
	}, nil
}

func parseHeaders(headers []kafka.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	parsed := make(map[string]string, len(headers))
	for _, h := range headers {
		parsed[h.Key] = string(h.Value)
	}
	return parsed
}
