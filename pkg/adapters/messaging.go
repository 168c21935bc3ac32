package adapters

import (
	"time"

	"github.com/lokalmarket/marketplace-commons/pkg/event"
	"github.com/samber/lo"
)

// ConversationMeta is the messaging service's per-participant bookkeeping,
// carrying a native last-read time.
type ConversationMeta struct {
	UnreadCount int
	LastRead    *time.Time
	IsArchived  bool
	IsMuted     bool
	IsPinned    bool
}

// Conversation is the messaging service's native conversation record.
type Conversation struct {
	ConversationID string
	Participants   []event.Participant
	LastActivity   time.Time
	Metadata       map[string]ConversationMeta
}

// Message is the messaging service's native message record. Timestamp is
// optional: undelivered drafts have none.
type Message struct {
	MessageID      string
	ConversationID string
	SenderID       string
	ReceiverID     string
	SenderName     string
	SenderPhone    string
	Status         string
	MessageType    string
	Content        event.MessageContent
	Timestamp      *time.Time
}

// ToChatCreated maps a conversation to the CHAT_CREATED payload, flattening
// every participant's last-read time to ISO text.
func ToChatCreated(conversation Conversation) event.ChatCreatedData {
	return event.ChatCreatedData{
		ConversationID: conversation.ConversationID,
		Participants:   conversation.Participants,
		LastActivity:   isoUTC(conversation.LastActivity),
		Metadata: lo.MapValues(conversation.Metadata, func(meta ConversationMeta, _ string) event.ParticipantState {
			state := event.ParticipantState{
				UnreadCount: meta.UnreadCount,
				IsArchived:  meta.IsArchived,
				IsMuted:     meta.IsMuted,
				IsPinned:    meta.IsPinned,
			}
			if meta.LastRead != nil {
				state.LastRead = isoUTC(*meta.LastRead)
			}
			return state
		}),
	}
}

// ToMessageSent maps a message to the MESSAGE_SENT payload. An absent
// timestamp stays absent.
func ToMessageSent(message Message) event.MessageSentData {
	data := event.MessageSentData{
		MessageID:      message.MessageID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		SenderName:     message.SenderName,
		SenderPhone:    message.SenderPhone,
		Status:         message.Status,
		MessageType:    message.MessageType,
		Content:        message.Content,
	}
	if message.Timestamp != nil {
		data.Timestamp = isoUTC(*message.Timestamp)
	}
	return data
}
