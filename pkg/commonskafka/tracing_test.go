package commonskafka

import (
	"context"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	testTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	testSpanID  = "00f067aa0ba902b7"
)

// withTraceContextPropagator installs the W3C propagator for one test and
// restores the previous global afterwards.
func withTraceContextPropagator(t *testing.T) {
	t.Helper()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	// The propagator captured before the first Set is otel's lazy default,
	// which forwards to whatever gets set later, so restoring it would leak
	// TraceContext into other tests. Reset to an empty composite instead,
	// which injects nothing.
	t.Cleanup(func() { otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator()) })
}

func tracedContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex(testTraceID)
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex(testSpanID)
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestMessageTracer_InjectContext(t *testing.T) {
	t.Run("appends trace headers after existing ones", func(t *testing.T) {
		withTraceContextPropagator(t)
		tracer := newMessageTracer()
		topic := "marketplace.user.events"
		msg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic},
			Headers: []kafka.Header{
				{Key: "custom", Value: []byte("value")},
			},
		}

		tracer.injectContext(tracedContext(t), msg)

		require.Len(t, msg.Headers, 2)
		assert.Equal(t, "custom", msg.Headers[0].Key)
		assert.Equal(t, "traceparent", msg.Headers[1].Key)
		assert.Equal(t, "00-"+testTraceID+"-"+testSpanID+"-01", string(msg.Headers[1].Value))
	})

	t.Run("no-op without a propagator", func(t *testing.T) {
		tracer := newMessageTracer()
		topic := "marketplace.user.events"
		msg := &kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic}}

		tracer.injectContext(tracedContext(t), msg)

		assert.Empty(t, msg.Headers)
	})
}

func TestMessageTracer_ExtractContext(t *testing.T) {
	t.Run("restores span context from headers", func(t *testing.T) {
		withTraceContextPropagator(t)
		tracer := newMessageTracer()
		topic := "marketplace.user.events"
		msg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic},
			Headers: []kafka.Header{
				{Key: "traceparent", Value: []byte("00-" + testTraceID + "-" + testSpanID + "-01")},
			},
		}

		ctx := tracer.extractContext(context.Background(), msg)

		sc := trace.SpanContextFromContext(ctx)
		require.True(t, sc.IsValid())
		assert.Equal(t, testTraceID, sc.TraceID().String())
	})

	t.Run("returns original context when no headers", func(t *testing.T) {
		tracer := newMessageTracer()
		topic := "marketplace.user.events"
		msg := &kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic}}
		ctx := context.Background()

		assert.Equal(t, ctx, tracer.extractContext(ctx, msg))
	})
}

func TestClient_Publish_InjectsTraceContext(t *testing.T) {
	withTraceContextPropagator(t)
	client, producer, _, _ := testClient(t)

	err := client.Publish(tracedContext(t), ProducerMessage{Topic: "marketplace.user.events", Value: testEnvelope()})

	require.NoError(t, err)
	require.Len(t, producer.produced, 1)
	headers := headerMap(producer.produced[0].Headers)
	assert.Contains(t, headers, "traceparent")
	assert.Contains(t, headers["traceparent"], testTraceID)
}

func TestClient_Subscribe_RestoresTraceContext(t *testing.T) {
	withTraceContextPropagator(t)
	client, _, consumer, _ := testClient(t)
	value, err := testEnvelope().Serialize()
	require.NoError(t, err)
	topic := "marketplace.user.events"
	consumer.queue = []*kafka.Message{{
		TopicPartition: kafka.TopicPartition{Topic: &topic},
		Value:          value,
		Headers: []kafka.Header{
			{Key: "traceparent", Value: []byte("00-" + testTraceID + "-" + testSpanID + "-01")},
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handlerTraceID string
	done := make(chan struct{})
	err = client.Subscribe(ctx, []string{topic}, func(ctx context.Context, msg ConsumerMessage) error {
		handlerTraceID = trace.SpanContextFromContext(ctx).TraceID().String()
		close(done)
		return nil
	}, "group-a")
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}

	assert.Equal(t, testTraceID, handlerTraceID)
}
