package adapters

import (
	"strings"

	"github.com/google/uuid"
)

// idSuffixLen is the number of hex characters kept from the uuid; short
// enough to stay readable in logs, long enough to avoid collisions at
// marketplace scale.
const idSuffixLen = 12

func newPrefixedID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLen]
}

// NewUserID generates a user id in the shared cross-service format.
func NewUserID() string { return newPrefixedID("user") }

// NewRequestID generates a buyer-request id.
func NewRequestID() string { return newPrefixedID("req") }

// NewOfferID generates an offer id.
func NewOfferID() string { return newPrefixedID("offer") }

// NewConversationID generates a conversation id.
func NewConversationID() string { return newPrefixedID("chat") }

// NewMessageID generates a chat message id.
func NewMessageID() string { return newPrefixedID("msg") }

// NewNotificationID generates a notification id.
func NewNotificationID() string { return newPrefixedID("notif") }

// NewCorrelationID generates a correlation id for event tracing. Unlike the
// entity ids above it keeps the full uuid.
func NewCorrelationID() string {
	return "corr_" + uuid.NewString()
}
