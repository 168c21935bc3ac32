package event

// SourceSearchService owns request and offer events.
const SourceSearchService = "search-service"

// Request event types.
const (
	TypeRequestCreated   = "REQUEST_CREATED"
	TypeRequestMatched   = "REQUEST_MATCHED"
	TypeRequestUpdated   = "REQUEST_UPDATED"
	TypeRequestCompleted = "REQUEST_COMPLETED"
	TypeRequestExpired   = "REQUEST_EXPIRED"
	TypeRequestCancelled = "REQUEST_CANCELLED"
)

var (
	RequestCreated   = Descriptor{Type: TypeRequestCreated, Source: SourceSearchService}
	RequestMatched   = Descriptor{Type: TypeRequestMatched, Source: SourceSearchService}
	RequestUpdated   = Descriptor{Type: TypeRequestUpdated, Source: SourceSearchService}
	RequestCompleted = Descriptor{Type: TypeRequestCompleted, Source: SourceSearchService}
	RequestExpired   = Descriptor{Type: TypeRequestExpired, Source: SourceSearchService}
	RequestCancelled = Descriptor{Type: TypeRequestCancelled, Source: SourceSearchService}
)

// RequestContent is the free-form body of a buyer request.
type RequestContent struct {
	Text   string   `json:"text,omitempty"`
	Images []string `json:"images,omitempty"`
}

// RequestLocation is where a request applies. Coordinates are ordered
// [longitude, latitude]; Radius is in kilometers.
type RequestLocation struct {
	Coordinates [2]float64 `json:"coordinates"`
	State       string     `json:"state,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	Address     string     `json:"address,omitempty"`
	Radius      *float64   `json:"radius,omitempty"`
}

// Budget is a price range a buyer is willing to pay.
type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Requirements captures timing and qualification constraints on a request.
type Requirements struct {
	Timeframe      string   `json:"timeframe"`
	Urgency        string   `json:"urgency"` // low, medium, high, urgent
	Qualifications []string `json:"qualifications,omitempty"`
}

type RequestCreatedData struct {
	RequestID    string           `json:"requestId"`
	BuyerID      string           `json:"buyerId,omitempty"`
	Buyer        string           `json:"buyer,omitempty"`
	Content      RequestContent   `json:"content"`
	Location     *RequestLocation `json:"location,omitempty"`
	Category     string           `json:"category,omitempty"`
	Status       string           `json:"status"` // active, completed, cancelled
	CreatedAt    string           `json:"createdAt"`
	ExpiresAt    string           `json:"expiresAt"`
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	Budget       *Budget          `json:"budget,omitempty"`
	Requirements *Requirements    `json:"requirements,omitempty"`
}

type RequestMatchedData struct {
	Request        RequestCreatedData `json:"request"`
	MatchedSellers []string           `json:"matchedSellers"`
}

type RequestUpdatedData struct {
	RequestID      string               `json:"requestId"`
	BuyerID        string               `json:"buyerId"`
	UpdatedFields  RequestUpdatedFields `json:"updatedFields"`
	PreviousValues map[string]any       `json:"previousValues"`
	Reason         string               `json:"reason"`
}

// RequestUpdatedFields lists the mutable request attributes; only the fields
// actually changed are set.
type RequestUpdatedFields struct {
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Budget       *Budget       `json:"budget,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
	ExpiresAt    string        `json:"expiresAt,omitempty"`
}

type RequestCompletedData struct {
	RequestID        string          `json:"requestId"`
	BuyerID          string          `json:"buyerId"`
	SelectedOfferID  string          `json:"selectedOfferId"`
	SellerID         string          `json:"sellerId"`
	FinalPrice       float64         `json:"finalPrice"`
	Currency         string          `json:"currency"`
	CompletionReason string          `json:"completionReason"` // offer_accepted, direct_hire, negotiated
	CompletedAt      string          `json:"completedAt"`
	Timeline         RequestTimeline `json:"timeline"`
}

// RequestTimeline tracks the lifecycle instants of a completed request.
type RequestTimeline struct {
	CreatedAt    string `json:"createdAt"`
	FirstOfferAt string `json:"firstOfferAt,omitempty"`
	AcceptedAt   string `json:"acceptedAt"`
}

type RequestExpiredData struct {
	RequestID                  string `json:"requestId"`
	BuyerID                    string `json:"buyerId"`
	ExpiredAt                  string `json:"expiredAt"`
	TotalOffersReceived        int    `json:"totalOffersReceived"`
	LastActivityAt             string `json:"lastActivityAt"`
	AutoExpired                bool   `json:"autoExpired"`
	NotificationsSentToSellers int    `json:"notificationsSentToSellers"`
}

type RequestCancelledData struct {
	RequestID           string   `json:"requestId"`
	BuyerID             string   `json:"buyerId"`
	CancelledAt         string   `json:"cancelledAt"`
	CancellationReason  string   `json:"cancellationReason"`
	TotalOffersReceived int      `json:"totalOffersReceived"`
	OffersToReject      []string `json:"offersToReject"`
	RefundRequired      bool     `json:"refundRequired"`
}

func NewRequestCreated(data RequestCreatedData, opts ...Option) Envelope[RequestCreatedData] {
	return New(RequestCreated, data, opts...)
}

func NewRequestMatched(data RequestMatchedData, opts ...Option) Envelope[RequestMatchedData] {
	return New(RequestMatched, data, opts...)
}

func NewRequestUpdated(data RequestUpdatedData, opts ...Option) Envelope[RequestUpdatedData] {
	return New(RequestUpdated, data, opts...)
}

func NewRequestCompleted(data RequestCompletedData, opts ...Option) Envelope[RequestCompletedData] {
	return New(RequestCompleted, data, opts...)
}

func NewRequestExpired(data RequestExpiredData, opts ...Option) Envelope[RequestExpiredData] {
	return New(RequestExpired, data, opts...)
}

func NewRequestCancelled(data RequestCancelledData, opts ...Option) Envelope[RequestCancelledData] {
	return New(RequestCancelled, data, opts...)
}
