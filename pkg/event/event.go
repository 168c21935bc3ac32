// Package event defines the canonical envelope every marketplace event is
// wrapped in, plus the per-domain event catalogs (user, request, offer,
// chat, notification). Services never build envelopes by hand: each event
// type exposes a constructor that binds the event-type tag and the owning
// service in one call.
package event

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// DefaultVersion is the schema version stamped on envelopes unless the
// caller pins an older one.
const DefaultVersion = "1.0"

// timestampLayout matches the ISO-8601 UTC format used on the wire,
// millisecond precision with a literal Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Descriptor binds an event-type tag to the service that owns it.
// One descriptor exists per catalog entry; constructors pass it to New so
// callers can never mismatch type and source.
type Descriptor struct {
	Type   string
	Source string
}

// Envelope is the canonical wrapper around every event instance. It is
// immutable once constructed; the seven fields below are exactly the
// top-level fields of the wire payload.
type Envelope[T any] struct {
	EventID       string `json:"eventId"`
	EventType     string `json:"eventType"`
	Version       string `json:"version"`
	Timestamp     string `json:"timestamp"`
	Source        string `json:"source"`
	CorrelationID string `json:"correlationId"`
	Data          T      `json:"data"`
}

// Raw is an envelope whose payload has not been decoded yet. The broker
// client deserializes into Raw; consumers pick the concrete payload type
// with DataAs.
type Raw = Envelope[json.RawMessage]

// Metadata is the transport-facing view of an envelope, used for header
// injection and key defaulting without making the broker client generic.
type Metadata struct {
	EventID       string
	EventType     string
	Source        string
	CorrelationID string
}

// Publishable is what the broker client accepts as a message value.
// Every Envelope instantiation implements it.
type Publishable interface {
	Metadata() Metadata
	Serialize() ([]byte, error)
}

type options struct {
	correlationID string
	version       string
}

// Option customizes envelope construction.
type Option func(*options)

// WithCorrelationID continues an existing causal chain instead of starting
// a new one.
func WithCorrelationID(id string) Option {
	return func(o *options) {
		o.correlationID = id
	}
}

// WithVersion pins the schema version, e.g. for consumers on older readers.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// New constructs an envelope for the given descriptor and payload.
// EventID and Timestamp are always generated here; a correlation id is
// generated unless one was supplied.
func New[T any](d Descriptor, data T, opts ...Option) Envelope[T] {
	o := options{version: DefaultVersion}
	for _, opt := range opts {
		opt(&o)
	}
	if o.correlationID == "" {
		o.correlationID = uuid.NewString()
	}
	if o.version == "" {
		o.version = DefaultVersion
	}

	return Envelope[T]{
		EventID:       uuid.NewString(),
		EventType:     d.Type,
		Version:       o.version,
		Timestamp:     time.Now().UTC().Format(timestampLayout),
		Source:        d.Source,
		CorrelationID: o.correlationID,
		Data:          data,
	}
}

// Metadata returns the transport-facing view of the envelope.
func (e Envelope[T]) Metadata() Metadata {
	return Metadata{
		EventID:       e.EventID,
		EventType:     e.EventType,
		Source:        e.Source,
		CorrelationID: e.CorrelationID,
	}
}

// Serialize renders the envelope as a single JSON document whose top-level
// keys are exactly the seven envelope fields.
func (e Envelope[T]) Serialize() ([]byte, error) {
	return json.Marshal(e)
}

// ToPayload returns the envelope as a plain map for in-process use, with
// the same field set as the serialized form.
func (e Envelope[T]) ToPayload() map[string]any {
	return map[string]any{
		"eventId":       e.EventID,
		"eventType":     e.EventType,
		"version":       e.Version,
		"timestamp":     e.Timestamp,
		"source":        e.Source,
		"correlationId": e.CorrelationID,
		"data":          e.Data,
	}
}

// IsValid reports whether all seven envelope fields are present. It is a
// pure check and never returns an error; producers that want a pre-publish
// sanity check call it explicitly.
func (e Envelope[T]) IsValid() bool {
	if e.EventID == "" || e.EventType == "" || e.Version == "" ||
		e.Timestamp == "" || e.Source == "" || e.CorrelationID == "" {
		return false
	}
	return dataPresent(e.Data)
}

// Deserialize parses a wire payload into a Raw envelope.
func Deserialize(value []byte) (Raw, error) {
	var e Raw
	if err := json.Unmarshal(value, &e); err != nil {
		return Raw{}, err
	}
	return e, nil
}

// DataAs decodes the payload of a Raw envelope into a concrete catalog type.
func DataAs[T any](e Raw) (T, error) {
	var data T
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return data, err
	}
	return data, nil
}

// dataPresent reports whether the payload is non-null. Struct payloads are
// always present; nilable kinds (maps, slices, pointers) count as absent
// when nil. A raw payload that still holds the JSON literal null counts as
// absent too, so a consumed envelope with "data": null fails validation.
func dataPresent(data any) bool {
	if data == nil {
		return false
	}
	if raw, ok := data.(json.RawMessage); ok {
		return len(raw) > 0 && string(raw) != "null"
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !v.IsNil()
	}
	return true
}
