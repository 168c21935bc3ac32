package event

// SourceMessagingService owns chat events.
const SourceMessagingService = "messaging-service"

// Chat event types.
const (
	TypeChatCreated      = "CHAT_CREATED"
	TypeMessageSent      = "MESSAGE_SENT"
	TypeMessageDelivered = "MESSAGE_DELIVERED"
	TypeMessageRead      = "MESSAGE_READ"
	TypeUserJoinedChat   = "USER_JOINED_CHAT"
	TypeUserLeftChat     = "USER_LEFT_CHAT"
	TypeChatArchived     = "CHAT_ARCHIVED"
	TypeChatDeleted      = "CHAT_DELETED"
)

var (
	ChatCreated      = Descriptor{Type: TypeChatCreated, Source: SourceMessagingService}
	MessageSent      = Descriptor{Type: TypeMessageSent, Source: SourceMessagingService}
	MessageDelivered = Descriptor{Type: TypeMessageDelivered, Source: SourceMessagingService}
	MessageRead      = Descriptor{Type: TypeMessageRead, Source: SourceMessagingService}
	UserJoinedChat   = Descriptor{Type: TypeUserJoinedChat, Source: SourceMessagingService}
	UserLeftChat     = Descriptor{Type: TypeUserLeftChat, Source: SourceMessagingService}
	ChatArchived     = Descriptor{Type: TypeChatArchived, Source: SourceMessagingService}
	ChatDeleted      = Descriptor{Type: TypeChatDeleted, Source: SourceMessagingService}
)

// Participant identifies a member of a conversation.
type Participant struct {
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// ParticipantState is a participant's per-conversation bookkeeping.
type ParticipantState struct {
	UnreadCount int    `json:"unreadCount"`
	LastRead    string `json:"lastRead,omitempty"`
	IsArchived  bool   `json:"isArchived"`
	IsMuted     bool   `json:"isMuted"`
	IsPinned    bool   `json:"isPinned"`
}

// RelatedEntity links a conversation to the marketplace object it is about.
type RelatedEntity struct {
	Type string `json:"type"` // request, offer, contract
	ID   string `json:"id"`
}

// ChatSettings are per-conversation behavior toggles.
type ChatSettings struct {
	IsEncrypted        bool `json:"isEncrypted"`
	AllowFileSharing   bool `json:"allowFileSharing"`
	AutoDeleteMessages bool `json:"autoDeleteMessages"`
	RetentionDays      *int `json:"retentionDays,omitempty"`
}

type ChatCreatedData struct {
	ConversationID string                      `json:"conversationId"`
	Participants   []Participant               `json:"participants"`
	LastActivity   string                      `json:"lastActivity"`
	Metadata       map[string]ParticipantState `json:"metadata"`
	Type           string                      `json:"type,omitempty"` // marketplace, support, group, direct
	CreatedBy      string                      `json:"createdBy,omitempty"`
	RelatedEntity  *RelatedEntity              `json:"relatedEntity,omitempty"`
	Settings       *ChatSettings               `json:"settings,omitempty"`
}

// MessageLocation is a shared location inside a message. Coordinates are
// ordered [longitude, latitude].
type MessageLocation struct {
	Coordinates *[2]float64 `json:"coordinates,omitempty"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Country     string      `json:"country,omitempty"`
	Address     string      `json:"address,omitempty"`
}

// MessageContent is the typed body of a chat message; exactly the fields
// matching the message type are set.
type MessageContent struct {
	Text         string           `json:"text,omitempty"`
	MediaURL     string           `json:"mediaUrl,omitempty"`
	MediaSize    *int64           `json:"mediaSize,omitempty"`
	Duration     *int             `json:"duration,omitempty"`
	Caption      string           `json:"caption,omitempty"`
	FileName     string           `json:"fileName,omitempty"`
	Location     *MessageLocation `json:"location,omitempty"`
	ContactName  string           `json:"contactName,omitempty"`
	ContactPhone string           `json:"contactPhone,omitempty"`
	StickerID    string           `json:"stickerId,omitempty"`
}

// ReplyRef points at the message being replied to.
type ReplyRef struct {
	MessageID   string `json:"messageId"`
	Content     string `json:"content"`
	MessageType string `json:"messageType"`
}

type MessageSentData struct {
	MessageID      string         `json:"messageId"`
	ConversationID string         `json:"conversationId"`
	SenderID       string         `json:"senderId"`
	ReceiverID     string         `json:"receiverId"`
	SenderName     string         `json:"senderName"`
	SenderPhone    string         `json:"senderPhone,omitempty"`
	IsDeleted      bool           `json:"isDeleted,omitempty"`
	IsStarred      bool           `json:"isStarred,omitempty"`
	Status         string         `json:"status"`      // sending, sent, delivered, read, failed
	MessageType    string         `json:"messageType"` // text, image, video, audio, file, document, sticker, location, contact
	Content        MessageContent `json:"content"`
	ReplyTo        *ReplyRef      `json:"replyTo,omitempty"`
	Timestamp      string         `json:"timestamp,omitempty"`
	RecipientIDs   []string       `json:"recipientIds,omitempty"`
	IsEdited       bool           `json:"isEdited,omitempty"`
	IsForwarded    bool           `json:"isForwarded,omitempty"`
	ExpiresAt      string         `json:"expiresAt,omitempty"`
}

type MessageDeliveredData struct {
	MessageID      string        `json:"messageId"`
	ChatID         string        `json:"chatId"`
	SenderID       string        `json:"senderId"`
	RecipientID    string        `json:"recipientId"`
	DeliveredAt    string        `json:"deliveredAt"`
	DeliveryMethod string        `json:"deliveryMethod"` // push, websocket, polling
	DeviceInfo     *ClientDevice `json:"deviceInfo,omitempty"`
}

// ReadReceipt measures the delay between send and read.
type ReadReceipt struct {
	MessageTimestamp       string `json:"messageTimestamp"`
	ReadTimestamp          string `json:"readTimestamp"`
	TimeBetweenSentAndRead int64  `json:"timeBetweenSentAndRead"` // milliseconds
}

type MessageReadData struct {
	MessageID           string      `json:"messageId"`
	ChatID              string      `json:"chatId"`
	SenderID            string      `json:"senderId"`
	ReadByID            string      `json:"readById"`
	ReadAt              string      `json:"readAt"`
	AllParticipantsRead bool        `json:"allParticipantsRead"`
	ReadReceipt         ReadReceipt `json:"readReceipt"`
}

// ChatPermissions are what a participant may do in a conversation.
type ChatPermissions struct {
	CanSendMessages bool `json:"canSendMessages"`
	CanShareFiles   bool `json:"canShareFiles"`
	CanInviteOthers bool `json:"canInviteOthers"`
}

type UserJoinedChatData struct {
	ChatID           string          `json:"chatId"`
	UserID           string          `json:"userId"`
	AddedBy          string          `json:"addedBy"`
	JoinedAt         string          `json:"joinedAt"`
	Role             string          `json:"role"`             // participant, moderator, admin
	InvitationMethod string          `json:"invitationMethod"` // direct, link, auto
	Permissions      ChatPermissions `json:"permissions"`
}

type UserLeftChatData struct {
	ChatID            string `json:"chatId"`
	UserID            string `json:"userId"`
	LeftAt            string `json:"leftAt"`
	Reason            string `json:"reason"` // user_initiated, removed_by_admin, chat_ended, auto_cleanup
	RemovedBy         string `json:"removedBy,omitempty"`
	LastMessageReadID string `json:"lastMessageReadId,omitempty"`
}

// ChatDuration brackets a conversation's lifetime.
type ChatDuration struct {
	StartedAt       string `json:"startedAt"`
	EndedAt         string `json:"endedAt"`
	TotalDurationMs int64  `json:"totalDurationMs"`
}

type ChatArchivedData struct {
	ChatID           string       `json:"chatId"`
	ArchivedBy       string       `json:"archivedBy"`
	ArchivedAt       string       `json:"archivedAt"`
	ArchiveReason    string       `json:"archiveReason"` // completed_transaction, user_request, inactivity, admin_action
	MessageCount     int          `json:"messageCount"`
	ParticipantCount int          `json:"participantCount"`
	Duration         ChatDuration `json:"duration"`
}

type ChatDeletedData struct {
	ChatID               string   `json:"chatId"`
	DeletedBy            string   `json:"deletedBy"`
	DeletedAt            string   `json:"deletedAt"`
	DeletionType         string   `json:"deletionType"` // soft or hard
	Reason               string   `json:"reason"`
	AffectedParticipants []string `json:"affectedParticipants"`
	MessageCount         int      `json:"messageCount"`
	BackupCreated        bool     `json:"backupCreated"`
	GDPRCompliant        bool     `json:"gdprCompliant"`
}

func NewChatCreated(data ChatCreatedData, opts ...Option) Envelope[ChatCreatedData] {
	return New(ChatCreated, data, opts...)
}

func NewMessageSent(data MessageSentData, opts ...Option) Envelope[MessageSentData] {
	return New(MessageSent, data, opts...)
}

func NewMessageDelivered(data MessageDeliveredData, opts ...Option) Envelope[MessageDeliveredData] {
	return New(MessageDelivered, data, opts...)
}

func NewMessageRead(data MessageReadData, opts ...Option) Envelope[MessageReadData] {
	return New(MessageRead, data, opts...)
}

func NewUserJoinedChat(data UserJoinedChatData, opts ...Option) Envelope[UserJoinedChatData] {
	return New(UserJoinedChat, data, opts...)
}

func NewUserLeftChat(data UserLeftChatData, opts ...Option) Envelope[UserLeftChatData] {
	return New(UserLeftChat, data, opts...)
}

func NewChatArchived(data ChatArchivedData, opts ...Option) Envelope[ChatArchivedData] {
	return New(ChatArchived, data, opts...)
}

func NewChatDeleted(data ChatDeletedData, opts ...Option) Envelope[ChatDeletedData] {
	return New(ChatDeleted, data, opts...)
}
