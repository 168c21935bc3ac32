// Package topics is the static registry of marketplace Kafka topics: names,
// retention configuration, per-service publish sets and the naming
// conventions for DLQ topics, consumer groups and environment prefixes.
// Everything here is a pure lookup or derivation; nothing talks to a broker.
package topics

import (
	"errors"
	"fmt"
	"time"
)

// Main event topics. Every main topic has exactly one DLQ counterpart,
// derived by DLQ; DLQ names are never stored independently.
const (
	UserEvents         = "marketplace.user.events"
	SellerEvents       = "marketplace.seller.events"
	RequestEvents      = "marketplace.request.events"
	OfferEvents        = "marketplace.offer.events"
	ChatEvents         = "marketplace.chat.events"
	NotificationEvents = "marketplace.notification.events"
)

// EnvProduction is the one environment whose topics carry no prefix, to
// match legacy deployments.
const EnvProduction = "production"

// ErrUnknownTopic reports a lookup for a topic the registry does not know.
// This is a programming error in the caller, never silently defaulted.
var ErrUnknownTopic = errors.New("unknown topic")

// Config is the provisioning configuration of a single topic.
type Config struct {
	Partitions        int
	ReplicationFactor int
	Retention         time.Duration
	Segment           time.Duration
}

// mainTopics lists every main topic in declaration order together with its
// configuration. DLQ entries are generated from this table in lockstep, so
// the registry always holds (main, dlq) pairs.
var mainTopics = []struct {
	name string
	conf Config
}{
	{UserEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 7 * 24 * time.Hour, Segment: 24 * time.Hour}},
	{SellerEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 7 * 24 * time.Hour, Segment: 24 * time.Hour}},
	{RequestEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 7 * 24 * time.Hour, Segment: 24 * time.Hour}},
	{OfferEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 7 * 24 * time.Hour, Segment: 24 * time.Hour}},
	{ChatEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 7 * 24 * time.Hour, Segment: 24 * time.Hour}},
	// Notification traffic is high volume and short lived.
	{NotificationEvents, Config{Partitions: 3, ReplicationFactor: 1, Retention: 24 * time.Hour, Segment: time.Hour}},
}

// dlqConfig applies to every DLQ topic: single partition, long retention so
// operators have time to replay failures.
var dlqConfig = Config{Partitions: 1, ReplicationFactor: 1, Retention: 30 * 24 * time.Hour, Segment: 7 * 24 * time.Hour}

var (
	all            []string
	configurations map[string]Config
)

func init() {
	configurations = make(map[string]Config, 2*len(mainTopics))
	for _, t := range mainTopics {
		all = append(all, t.name)
		configurations[t.name] = t.conf
	}
	for _, t := range mainTopics {
		dlq := DLQ(t.name)
		all = append(all, dlq)
		configurations[dlq] = dlqConfig
	}
}

// serviceTopics maps each owning service to the topics it publishes to, in
// declared order. Used by provisioning, not by the publish path.
var serviceTopics = map[string][]string{
	"account-service":      {UserEvents},
	"search-service":       {RequestEvents, OfferEvents, SellerEvents},
	"messaging-service":    {ChatEvents},
	"notification-service": {NotificationEvents},
}

// DLQ derives the dead-letter topic name for a main topic. It is a pure
// string transform; for registry topics the derived name is guaranteed to be
// registered because entries are generated in (main, dlq) pairs.
func DLQ(mainTopic string) string {
	return mainTopic + ".dlq"
}

// ConfigFor returns the provisioning configuration of a registered topic.
func ConfigFor(topic string) (Config, error) {
	conf, ok := configurations[topic]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return conf, nil
}

// ForService returns the ordered set of topics a service is expected to
// publish to. Unknown services have no topics.
func ForService(serviceName string) []string {
	return serviceTopics[serviceName]
}

// IsValid reports whether the name is a registered marketplace topic
// (main or DLQ).
func IsValid(topic string) bool {
	_, ok := configurations[topic]
	return ok
}

// All returns every registered topic, main topics first, then DLQs, each in
// declaration order.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// ConsumerGroupID builds the conventional consumer group name for a
// service, optionally qualified by purpose.
func ConsumerGroupID(serviceName, purpose string) string {
	base := serviceName + "-consumer"
	if purpose == "" {
		return base
	}
	return base + "-" + purpose
}

// ForEnvironment prefixes a topic with the environment name. Production
// topics are returned unprefixed.
func ForEnvironment(topic, environment string) string {
	if environment == EnvProduction {
		return topic
	}
	return environment + "." + topic
}
