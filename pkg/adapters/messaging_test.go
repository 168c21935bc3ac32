package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokalmarket/marketplace-commons/pkg/event"
)

func TestToChatCreated(t *testing.T) {
	lastActivity := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	lastRead := lastActivity.Add(-5 * time.Minute)
	conversation := Conversation{
		ConversationID: "chat_1",
		Participants: []event.Participant{
			{Name: "Dana"},
			{Name: "Lee", Phone: "+15550100"},
		},
		LastActivity: lastActivity,
		Metadata: map[string]ConversationMeta{
			"user_1": {UnreadCount: 2, LastRead: &lastRead, IsPinned: true},
			"user_2": {UnreadCount: 0},
		},
	}

	data := ToChatCreated(conversation)

	assert.Equal(t, "chat_1", data.ConversationID)
	assert.Len(t, data.Participants, 2)
	assert.Equal(t, "2026-06-01T10:00:00.000Z", data.LastActivity)

	require.Contains(t, data.Metadata, "user_1")
	assert.Equal(t, 2, data.Metadata["user_1"].UnreadCount)
	assert.Equal(t, "2026-06-01T09:55:00.000Z", data.Metadata["user_1"].LastRead)
	assert.True(t, data.Metadata["user_1"].IsPinned)

	// A participant who never read anything has no last-read text
	require.Contains(t, data.Metadata, "user_2")
	assert.Empty(t, data.Metadata["user_2"].LastRead)
}

func TestToMessageSent(t *testing.T) {
	t.Run("with timestamp", func(t *testing.T) {
		sent := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)
		message := Message{
			MessageID:      "msg_1",
			ConversationID: "chat_1",
			SenderID:       "user_1",
			ReceiverID:     "user_2",
			SenderName:     "Dana",
			Status:         "sent",
			MessageType:    "text",
			Content:        event.MessageContent{Text: "on my way"},
			Timestamp:      &sent,
		}

		data := ToMessageSent(message)

		assert.Equal(t, "msg_1", data.MessageID)
		assert.Equal(t, "chat_1", data.ConversationID)
		assert.Equal(t, "text", data.MessageType)
		assert.Equal(t, "on my way", data.Content.Text)
		assert.Equal(t, "2026-06-01T10:30:00.000Z", data.Timestamp)
	})

	t.Run("absent timestamp stays absent", func(t *testing.T) {
		data := ToMessageSent(Message{MessageID: "msg_2", Status: "sending", MessageType: "text"})

		assert.Empty(t, data.Timestamp)
	})
}
