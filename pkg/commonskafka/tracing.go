package commonskafka

import (
	"context"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// messageTracer propagates W3C trace context through message headers and
// opens spans around the publish and consume paths. With no global tracer
// provider or propagator configured every call is a no-op, so tracing is
// opt-in per service.
type messageTracer struct {
	tracer trace.Tracer
}

func newMessageTracer() *messageTracer {
	return &messageTracer{
		tracer: otel.GetTracerProvider().Tracer("commonskafka"),
	}
}

// injectContext appends the active trace context to the message headers.
// Existing headers stay in place; propagation headers are appended in sorted
// key order so the header layout stays deterministic.
func (t *messageTracer) injectContext(ctx context.Context, message *kafka.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		return
	}

	keys := carrier.Keys()
	sort.Strings(keys)
	for _, key := range keys {
		message.Headers = append(message.Headers, kafka.Header{Key: key, Value: []byte(carrier[key])})
	}
}

// extractContext restores the trace context carried in the message headers.
func (t *messageTracer) extractContext(ctx context.Context, message *kafka.Message) context.Context {
	if len(message.Headers) == 0 {
		return ctx
	}

	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		carrier[header.Key] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func (t *messageTracer) startProducerSpan(ctx context.Context, topic, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "kafka.produce",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.message.key", key),
		),
	)
}

func (t *messageTracer) startConsumerSpan(ctx context.Context, message *kafka.Message) (context.Context, trace.Span) {
	topic := ""
	if message.TopicPartition.Topic != nil {
		topic = *message.TopicPartition.Topic
	}
	return t.tracer.Start(ctx, "kafka.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.Int("messaging.partition", int(message.TopicPartition.Partition)),
			attribute.Int64("messaging.offset", int64(message.TopicPartition.Offset)),
			attribute.String("messaging.message.key", string(message.Key)),
		),
	)
}
