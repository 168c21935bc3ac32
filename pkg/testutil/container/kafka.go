// Package container provides test container helpers for integration tests.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// KafkaContainer wraps a single-node Redpanda container exposing a
// Kafka-compatible API.
type KafkaContainer struct {
	Container testcontainers.Container
	Brokers   string
}

// KafkaOption configures the Kafka container.
type KafkaOption func(*kafkaOptions)

type kafkaOptions struct {
	image string
}

// WithKafkaImage sets the Redpanda image to use.
func WithKafkaImage(image string) KafkaOption {
	return func(o *kafkaOptions) {
		o.image = image
	}
}

// StartKafkaContainer starts a single-node Redpanda broker for integration
// tests. Redpanda boots in seconds and speaks the Kafka protocol, so tests
// exercise the real client path without a full Kafka deployment.
func StartKafkaContainer(ctx context.Context, opts ...KafkaOption) (*KafkaContainer, error) {
	options := &kafkaOptions{
		image: "redpandadata/redpanda:v24.1.1",
	}
	for _, opt := range opts {
		opt(options)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        options.image,
			ExposedPorts: []string{"9092/tcp"},
			Cmd: []string{
				"redpanda", "start",
				"--mode", "dev-container",
				"--smp", "1",
				"--memory", "512M",
				"--reserve-memory", "0M",
				"--overprovisioned",
				"--node-id", "0",
				"--kafka-addr", "PLAINTEXT://0.0.0.0:9092",
				"--advertise-kafka-addr", "PLAINTEXT://localhost:9092",
			},
			WaitingFor: wait.ForListeningPort("9092/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start redpanda container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "9092")
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // best effort cleanup
		return nil, fmt.Errorf("failed to get kafka port: %w", err)
	}

	return &KafkaContainer{
		Container: container,
		Brokers:   fmt.Sprintf("%s:%s", host, port.Port()),
	}, nil
}

// Terminate terminates the container.
func (k *KafkaContainer) Terminate(ctx context.Context) error {
	if k.Container != nil {
		return k.Container.Terminate(ctx)
	}
	return nil
}
