// Package topicsetup provisions the marketplace topic registry on a Kafka
// cluster. It is idempotent: topics that already exist are left untouched.
package topicsetup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lokalmarket/marketplace-commons/pkg/commonskafka"
	"github.com/lokalmarket/marketplace-commons/pkg/topics"
)

const (
	maxMessageBytes   = 1048576
	minInsyncReplicas = 1
)

type Config struct {
	// Brokers is the bootstrap server list, e.g. "localhost:9092"
	Brokers string

	// Environment prefixes topic names for non-production clusters
	Environment string

	// WaitTimeout bounds how long to wait for the broker to become reachable
	WaitTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = topics.EnvProduction
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = 60 * time.Second
	}
}

// Runner provisions registry topics against a single cluster.
type Runner struct {
	conf   Config
	client *commonskafka.Client
	log    *zap.Logger
}

func New(conf Config, log *zap.Logger) (*Runner, error) {
	conf.applyDefaults()

	client, err := commonskafka.NewClient(commonskafka.Conf{
		ClientID: "topicsetup",
		Brokers:  conf.Brokers,
	}, log)
	if err != nil {
		return nil, err
	}

	return &Runner{conf: conf, client: client, log: log}, nil
}

// Run waits for the broker, then creates every registry topic that does not
// exist yet.
func (r *Runner) Run(ctx context.Context) error {
	defer r.client.Disconnect()

	if err := r.waitForBroker(ctx); err != nil {
		return err
	}

	existing, err := r.client.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("failed to list existing topics: %w", err)
	}
	existingSet := lo.SliceToMap(existing, func(name string) (string, struct{}) {
		return name, struct{}{}
	})

	var specs []commonskafka.TopicSpec
	for _, topic := range topics.All() {
		name := topics.ForEnvironment(topic, r.conf.Environment)
		if _, ok := existingSet[name]; ok {
			r.log.Info("topic already exists", zap.String("topic", name))
			continue
		}

		conf, err := topics.ConfigFor(topic)
		if err != nil {
			return err
		}
		specs = append(specs, topicSpec(name, conf))
	}

	if len(specs) == 0 {
		r.log.Info("all topics already exist", zap.Int("count", len(topics.All())))
		return nil
	}

	if err := r.client.CreateTopics(ctx, specs); err != nil {
		return err
	}

	for _, spec := range specs {
		r.log.Info("created topic",
			zap.String("topic", spec.Topic),
			zap.Int("partitions", spec.NumPartitions),
			zap.String("retention", spec.ConfigEntries["retention.ms"]),
		)
	}
	r.log.Info("topic setup complete",
		zap.Int("created", len(specs)),
		zap.Int("total", len(topics.All())),
	)
	return nil
}

// waitForBroker polls the cluster until it answers metadata requests. Fresh
// clusters in CI can take a while to elect a controller.
func (r *Runner) waitForBroker(ctx context.Context) error {
	policy := backoff.WithContext(
		backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(r.conf.WaitTimeout)),
		ctx,
	)

	return backoff.Retry(func() error {
		if !r.client.HealthCheck(ctx) {
			r.log.Info("waiting for broker", zap.String("brokers", r.conf.Brokers))
			return fmt.Errorf("broker %s not reachable", r.conf.Brokers)
		}
		return nil
	}, policy)
}

func topicSpec(name string, conf topics.Config) commonskafka.TopicSpec {
	return commonskafka.TopicSpec{
		Topic:             name,
		NumPartitions:     conf.Partitions,
		ReplicationFactor: conf.ReplicationFactor,
		ConfigEntries: map[string]string{
			"cleanup.policy":      "delete",
			"retention.ms":        strconv.FormatInt(conf.Retention.Milliseconds(), 10),
			"segment.ms":          strconv.FormatInt(conf.Segment.Milliseconds(), 10),
			"compression.type":    "gzip",
			"max.message.bytes":   strconv.Itoa(maxMessageBytes),
			"min.insync.replicas": strconv.Itoa(minInsyncReplicas),
		},
	}
}
