package event

// SourceNotificationService owns notification events.
const SourceNotificationService = "notification-service"

// Notification event types.
const (
	TypeNotificationTriggered = "NOTIFICATION_TRIGGERED"
	TypeNotificationSent      = "NOTIFICATION_SENT"
	TypeNotificationDelivered = "NOTIFICATION_DELIVERED"
	TypeNotificationFailed    = "NOTIFICATION_FAILED"
	TypeNotificationClicked   = "NOTIFICATION_CLICKED"
	TypeNotificationDismissed = "NOTIFICATION_DISMISSED"
	TypeBulkNotificationSent  = "BULK_NOTIFICATION_SENT"
)

var (
	NotificationTriggered = Descriptor{Type: TypeNotificationTriggered, Source: SourceNotificationService}
	NotificationSent      = Descriptor{Type: TypeNotificationSent, Source: SourceNotificationService}
	NotificationDelivered = Descriptor{Type: TypeNotificationDelivered, Source: SourceNotificationService}
	NotificationFailed    = Descriptor{Type: TypeNotificationFailed, Source: SourceNotificationService}
	NotificationClicked   = Descriptor{Type: TypeNotificationClicked, Source: SourceNotificationService}
	NotificationDismissed = Descriptor{Type: TypeNotificationDismissed, Source: SourceNotificationService}
	BulkNotificationSent  = Descriptor{Type: TypeBulkNotificationSent, Source: SourceNotificationService}
)

// Notification categories, aligned with the notification service.
const (
	CategoryRequestMatched = "request_matched"
	CategoryOfferReceived  = "offer_received"
	CategoryOfferAccepted  = "offer_accepted"
	CategoryOfferRejected  = "offer_rejected"
	CategoryChatMessage    = "chat_message"
	CategoryChatCreated    = "chat_created"
	CategorySellerOnline   = "seller_online"
	CategoryRequestExpired = "request_expired"
	CategoryOfferExpired   = "offer_expired"
	CategoryGeneral        = "general"
)

// TriggerEvent points back at the domain event that caused a notification.
type TriggerEvent struct {
	EventType     string `json:"eventType"`
	EventID       string `json:"eventId"`
	Source        string `json:"source"`
	CorrelationID string `json:"correlationId"`
}

// NotificationTemplate references a rendering template and its variables.
type NotificationTemplate struct {
	ID        string         `json:"id"`
	Variables map[string]any `json:"variables"`
}

type NotificationTriggeredData struct {
	NotificationID string                `json:"notificationId"`
	UserID         string                `json:"userId"`
	Title          string                `json:"title"`
	Body           string                `json:"body"`
	Data           map[string]string     `json:"data,omitempty"`
	ImageURL       string                `json:"imageUrl,omitempty"`
	Type           string                `json:"type"`     // a Category* constant
	Priority       string                `json:"priority"` // low, normal, high
	Status         string                `json:"status"`   // pending, sent, delivered, failed
	SentAt         string                `json:"sentAt,omitempty"`
	DeliveredAt    string                `json:"deliveredAt,omitempty"`
	CreatedAt      string                `json:"createdAt"`
	ExpiresAt      string                `json:"expiresAt,omitempty"`
	TriggerEvent   *TriggerEvent         `json:"triggerEvent,omitempty"`
	Template       *NotificationTemplate `json:"template,omitempty"`
}

type NotificationSentData struct {
	NotificationID  string            `json:"notificationId"`
	UserID          string            `json:"userId"`
	Title           string            `json:"title"`
	Body            string            `json:"body"`
	Data            map[string]string `json:"data,omitempty"`
	ImageURL        string            `json:"imageUrl,omitempty"`
	Type            string            `json:"type"`
	Priority        string            `json:"priority"`
	Status          string            `json:"status"` // always "sent"
	SentAt          string            `json:"sentAt"`
	Channel         string            `json:"channel,omitempty"` // fcm, apns, email, sms, websocket
	DeliveryAttempt *int              `json:"deliveryAttempt,omitempty"`
	BatchID         string            `json:"batchId,omitempty"`
	DeviceToken     string            `json:"deviceToken,omitempty"`
	MessageID       string            `json:"messageId,omitempty"` // external provider message id
}

// ProviderResponse is the push/email provider's acknowledgment.
type ProviderResponse struct {
	MessageID string         `json:"messageId"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type NotificationDeliveredData struct {
	NotificationID   string            `json:"notificationId"`
	RecipientID      string            `json:"recipientId"`
	Channel          string            `json:"channel"`
	DeliveredAt      string            `json:"deliveredAt"`
	DeliveryLatency  int64             `json:"deliveryLatency"` // milliseconds from sent to delivered
	DeviceInfo       *ClientDevice     `json:"deviceInfo,omitempty"`
	ProviderResponse *ProviderResponse `json:"providerResponse,omitempty"`
}

// ProviderError is the provider-side failure detail.
type ProviderError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type NotificationFailedData struct {
	NotificationID string         `json:"notificationId"`
	RecipientID    string         `json:"recipientId"`
	Channel        string         `json:"channel"`
	FailedAt       string         `json:"failedAt"`
	FailureReason  string         `json:"failureReason"`
	ErrorCode      string         `json:"errorCode,omitempty"`
	RetryAttempt   int            `json:"retryAttempt"`
	MaxRetries     int            `json:"maxRetries"`
	WillRetry      bool           `json:"willRetry"`
	NextRetryAt    string         `json:"nextRetryAt,omitempty"`
	DeviceToken    string         `json:"deviceToken,omitempty"`
	ProviderError  *ProviderError `json:"providerError,omitempty"`
}

// AppDevice extends ClientDevice with the app build that displayed the
// notification.
type AppDevice struct {
	Platform   string `json:"platform"`
	Version    string `json:"version"`
	DeviceID   string `json:"deviceId"`
	AppVersion string `json:"appVersion"`
}

// ClickContext captures where in the app a click landed.
type ClickContext struct {
	ScreenName     string         `json:"screenName,omitempty"`
	UserAction     string         `json:"userAction,omitempty"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
}

type NotificationClickedData struct {
	NotificationID string        `json:"notificationId"`
	RecipientID    string        `json:"recipientId"`
	ClickedAt      string        `json:"clickedAt"`
	ActionTaken    string        `json:"actionTaken"`
	ClickSource    string        `json:"clickSource"` // notification_body, action_button, deep_link
	DeviceInfo     AppDevice     `json:"deviceInfo"`
	ContextData    *ClickContext `json:"contextData,omitempty"`
}

type NotificationDismissedData struct {
	NotificationID  string       `json:"notificationId"`
	RecipientID     string       `json:"recipientId"`
	DismissedAt     string       `json:"dismissedAt"`
	DismissalReason string       `json:"dismissalReason"` // user_swipe, auto_timeout, app_clear, system_clear
	TimeDisplayed   int64        `json:"timeDisplayed"`   // milliseconds the notification was visible
	DeviceInfo      ClientDevice `json:"deviceInfo"`
}

// Campaign describes a bulk send.
type Campaign struct {
	Name           string `json:"name"`
	Type           string `json:"type"` // marketing, system, urgent, announcement
	TargetAudience string `json:"targetAudience"`
}

// RecipientCounts tallies the outcome of a bulk send.
type RecipientCounts struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Pending    int `json:"pending"`
}

// BulkContent is the shared content of a bulk notification.
type BulkContent struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ActionURL string `json:"actionUrl,omitempty"`
}

// Segmentation describes how the bulk audience was selected.
type Segmentation struct {
	Criteria      map[string]any `json:"criteria"`
	IncludedUsers int            `json:"includedUsers"`
	ExcludedUsers int            `json:"excludedUsers"`
}

type BulkNotificationSentData struct {
	BatchID               string          `json:"batchId"`
	Campaign              Campaign        `json:"campaign"`
	Recipients            RecipientCounts `json:"recipients"`
	Content               BulkContent     `json:"content"`
	Channels              []string        `json:"channels"`
	SentAt                string          `json:"sentAt"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime"`
	Segmentation          *Segmentation   `json:"segmentation,omitempty"`
}

func NewNotificationTriggered(data NotificationTriggeredData, opts ...Option) Envelope[NotificationTriggeredData] {
	return New(NotificationTriggered, data, opts...)
}

func NewNotificationSent(data NotificationSentData, opts ...Option) Envelope[NotificationSentData] {
	return New(NotificationSent, data, opts...)
}

func NewNotificationDelivered(data NotificationDeliveredData, opts ...Option) Envelope[NotificationDeliveredData] {
	return New(NotificationDelivered, data, opts...)
}

func NewNotificationFailed(data NotificationFailedData, opts ...Option) Envelope[NotificationFailedData] {
	return New(NotificationFailed, data, opts...)
}

func NewNotificationClicked(data NotificationClickedData, opts ...Option) Envelope[NotificationClickedData] {
	return New(NotificationClicked, data, opts...)
}

func NewNotificationDismissed(data NotificationDismissedData, opts ...Option) Envelope[NotificationDismissedData] {
	return New(NotificationDismissed, data, opts...)
}

func NewBulkNotificationSent(data BulkNotificationSentData, opts ...Option) Envelope[BulkNotificationSentData] {
	return New(BulkNotificationSent, data, opts...)
}
