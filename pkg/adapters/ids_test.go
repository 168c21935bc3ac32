package adapters

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixedIDs_Format(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"user id", NewUserID, "user"},
		{"request id", NewRequestID, "req"},
		{"offer id", NewOfferID, "offer"},
		{"conversation id", NewConversationID, "chat"},
		{"message id", NewMessageID, "msg"},
		{"notification id", NewNotificationID, "notif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()

			assert.Regexp(t, regexp.MustCompile("^"+tt.prefix+"_[0-9a-f]{12}$"), id)
			assert.NotEqual(t, id, tt.gen(), "ids should be unique")
		})
	}
}

func TestNewCorrelationID_KeepsFullUUID(t *testing.T) {
	id := NewCorrelationID()

	assert.Regexp(t, `^corr_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}
