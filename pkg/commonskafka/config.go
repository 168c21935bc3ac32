package commonskafka

import (
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/spf13/viper"
)

// Conf is the broker client configuration, loaded from the "kafka" config
// subtree.
type Conf struct {
	ClientID          string        `mapstructure:"client-id"`          // Client identifier reported to the broker (required)
	Brokers           string        `mapstructure:"brokers"`            // Comma-separated broker addresses, e.g. "localhost:9092" (required)
	GroupID           string        `mapstructure:"group-id"`           // Default consumer group id (defaults to "{client-id}-group")
	SecurityProtocol  string        `mapstructure:"security-protocol"`  // e.g. "sasl_ssl"; empty means plaintext
	SASLMechanism     string        `mapstructure:"sasl-mechanism"`     // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername      string        `mapstructure:"sasl-username"`      // SASL username
	SASLPassword      string        `mapstructure:"sasl-password"`      // SASL password
	ConnectionTimeout time.Duration `mapstructure:"connection-timeout"` // Broker connection timeout (default 3s)
	RequestTimeout    time.Duration `mapstructure:"request-timeout"`    // Per-request timeout, also used for admin operations (default 25s)
	SessionTimeout    time.Duration `mapstructure:"session-timeout"`    // Consumer group session timeout (default 30s)
	MaxRetries        int           `mapstructure:"max-retries"`        // Producer retry ceiling (default 5)
	RetryBackoff      time.Duration `mapstructure:"retry-backoff"`      // Producer retry backoff (default 100ms)
	PollTimeout       time.Duration `mapstructure:"poll-timeout"`       // Consumer poll timeout per read (default 5s)
}

const (
	defaultConnectionTimeout = 3 * time.Second
	defaultRequestTimeout    = 25 * time.Second
	defaultSessionTimeout    = 30 * time.Second
	defaultMaxRetries        = 5
	defaultRetryBackoff      = 100 * time.Millisecond
	defaultPollTimeout       = 5 * time.Second
)

func (c *Conf) applyDefaults() {
	if c.ConnectionTimeout == 0 {
		c.ConnectionTimeout = defaultConnectionTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.SessionTimeout == 0 {
		c.SessionTimeout = defaultSessionTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = defaultPollTimeout
	}
}

// Validate checks required fields.
func (c Conf) Validate() error {
	if c.ClientID == "" {
		return errors.New("kafka client-id is required")
	}
	if c.Brokers == "" {
		return errors.New("kafka brokers are required")
	}
	return nil
}

// applySecurity copies the optional SSL/SASL settings into a librdkafka
// config map.
func (c Conf) applySecurity(cm *kafka.ConfigMap) {
	if c.SecurityProtocol != "" {
		_ = cm.SetKey("security.protocol", c.SecurityProtocol)
	}
	if c.SASLMechanism != "" {
		_ = cm.SetKey("sasl.mechanism", c.SASLMechanism)
		_ = cm.SetKey("sasl.username", c.SASLUsername)
		_ = cm.SetKey("sasl.password", c.SASLPassword)
	}
}

func newConf(v *viper.Viper) (Conf, error) {
	var conf Conf
	sub := v.Sub("kafka")
	if sub == nil {
		return Conf{}, errors.New("kafka configuration section is missing")
	}
	if err := sub.Unmarshal(&conf); err != nil {
		return Conf{}, fmt.Errorf("failed to load kafka config: %w", err)
	}
	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return Conf{}, err
	}
	return conf, nil
}
