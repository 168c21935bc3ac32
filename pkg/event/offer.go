package event

// Offer event types, owned by the search service.
const (
	TypeOfferCreated         = "OFFER_CREATED"
	TypeOfferUpdated         = "OFFER_UPDATED"
	TypeOfferAccepted        = "OFFER_ACCEPTED"
	TypeOfferRejected        = "OFFER_REJECTED"
	TypeOfferWithdrawn       = "OFFER_WITHDRAWN"
	TypeOfferExpired         = "OFFER_EXPIRED"
	TypeOfferCounterProposed = "OFFER_COUNTER_PROPOSED"
)

var (
	OfferCreated         = Descriptor{Type: TypeOfferCreated, Source: SourceSearchService}
	OfferUpdated         = Descriptor{Type: TypeOfferUpdated, Source: SourceSearchService}
	OfferAccepted        = Descriptor{Type: TypeOfferAccepted, Source: SourceSearchService}
	OfferRejected        = Descriptor{Type: TypeOfferRejected, Source: SourceSearchService}
	OfferWithdrawn       = Descriptor{Type: TypeOfferWithdrawn, Source: SourceSearchService}
	OfferExpired         = Descriptor{Type: TypeOfferExpired, Source: SourceSearchService}
	OfferCounterProposed = Descriptor{Type: TypeOfferCounterProposed, Source: SourceSearchService}
)

// OfferProposal is the seller's pitch attached to an offer.
type OfferProposal struct {
	Timeline     string   `json:"timeline"`
	Deliverables []string `json:"deliverables"`
	Terms        string   `json:"terms,omitempty"`
}

// SellerProfile summarizes the seller for buyers comparing offers.
type SellerProfile struct {
	BusinessName  string  `json:"businessName,omitempty"`
	Rating        float64 `json:"rating"`
	CompletedJobs int     `json:"completedJobs"`
	ResponseTime  string  `json:"responseTime"`
}

type OfferCreatedData struct {
	OfferID           string         `json:"offerId"`
	RequestID         string         `json:"requestId"`
	SellerID          string         `json:"sellerId"`
	Price             float64        `json:"price"`
	Currency          string         `json:"currency"`
	Description       string         `json:"description"`
	EstimatedDelivery string         `json:"estimatedDelivery,omitempty"`
	Images            []string       `json:"images,omitempty"`
	Status            string         `json:"status"` // pending, accepted, rejected, expired
	CreatedAt         string         `json:"createdAt"`
	ExpiresAt         string         `json:"expiresAt"`
	BuyerID           string         `json:"buyerId,omitempty"`
	Proposal          *OfferProposal `json:"proposal,omitempty"`
	SellerProfile     *SellerProfile `json:"sellerProfile,omitempty"`
	IsCounterOffer    bool           `json:"isCounterOffer,omitempty"`
	ParentOfferID     string         `json:"parentOfferId,omitempty"`
}

// PriceBreakdownItem is a line item in an itemized price.
type PriceBreakdownItem struct {
	Item        string  `json:"item"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// OfferPricing is an itemized price attached to an offer update.
type OfferPricing struct {
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Breakdown []PriceBreakdownItem `json:"breakdown,omitempty"`
}

// OfferUpdatedFields lists the mutable offer attributes; only the fields
// actually changed are set.
type OfferUpdatedFields struct {
	Pricing   *OfferPricing  `json:"pricing,omitempty"`
	Proposal  *OfferProposal `json:"proposal,omitempty"`
	ExpiresAt string         `json:"expiresAt,omitempty"`
}

type OfferUpdatedData struct {
	OfferID        string             `json:"offerId"`
	RequestID      string             `json:"requestId"`
	SellerID       string             `json:"sellerId"`
	BuyerID        string             `json:"buyerId"`
	UpdatedFields  OfferUpdatedFields `json:"updatedFields"`
	PreviousValues map[string]any     `json:"previousValues"`
	UpdateReason   string             `json:"updateReason"`
}

// ContractTerms are the agreed terms recorded when an offer is accepted.
type ContractTerms struct {
	Deliverables       []string `json:"deliverables"`
	Timeline           string   `json:"timeline"`
	PaymentTerms       string   `json:"paymentTerms"`
	CancellationPolicy string   `json:"cancellationPolicy"`
}

// NextSteps flags the follow-up work an acceptance triggers downstream.
type NextSteps struct {
	ChatCreationRequired       bool `json:"chatCreationRequired"`
	PaymentProcessingRequired  bool `json:"paymentProcessingRequired"`
	ContractGenerationRequired bool `json:"contractGenerationRequired"`
}

type OfferAcceptedData struct {
	OfferID        string        `json:"offerId"`
	RequestID      string        `json:"requestId"`
	SellerID       string        `json:"sellerId"`
	BuyerID        string        `json:"buyerId"`
	AcceptedAt     string        `json:"acceptedAt"`
	FinalPrice     float64       `json:"finalPrice"`
	Currency       string        `json:"currency"`
	AgreedTimeline string        `json:"agreedTimeline"`
	ContractTerms  ContractTerms `json:"contractTerms"`
	NextSteps      NextSteps     `json:"nextSteps"`
}

type OfferRejectedData struct {
	OfferID               string `json:"offerId"`
	RequestID             string `json:"requestId"`
	SellerID              string `json:"sellerId"`
	BuyerID               string `json:"buyerId"`
	RejectedAt            string `json:"rejectedAt"`
	RejectionReason       string `json:"rejectionReason"`
	Feedback              string `json:"feedback,omitempty"`
	CounterOfferSuggested bool   `json:"counterOfferSuggested"`
	AllowResubmission     bool   `json:"allowResubmission"`
}

type OfferWithdrawnData struct {
	OfferID          string `json:"offerId"`
	RequestID        string `json:"requestId"`
	SellerID         string `json:"sellerId"`
	BuyerID          string `json:"buyerId"`
	WithdrawnAt      string `json:"withdrawnAt"`
	WithdrawalReason string `json:"withdrawalReason"`
	RefundRequired   bool   `json:"refundRequired"`
	NotifyBuyer      bool   `json:"notifyBuyer"`
}

type OfferExpiredData struct {
	OfferID          string `json:"offerId"`
	RequestID        string `json:"requestId"`
	SellerID         string `json:"sellerId"`
	BuyerID          string `json:"buyerId"`
	ExpiredAt        string `json:"expiredAt"`
	AutoExpired      bool   `json:"autoExpired"`
	LastViewedBy     string `json:"lastViewedBy"` // seller, buyer, none
	ExtensionAllowed bool   `json:"extensionAllowed"`
}

// PricingChange records a proposed price move in a negotiation round.
type PricingChange struct {
	OriginalAmount float64 `json:"originalAmount"`
	ProposedAmount float64 `json:"proposedAmount"`
	Currency       string  `json:"currency"`
	Justification  string  `json:"justification,omitempty"`
}

// TimelineChange records a proposed timeline move in a negotiation round.
type TimelineChange struct {
	OriginalTimeline string `json:"originalTimeline"`
	ProposedTimeline string `json:"proposedTimeline"`
	Justification    string `json:"justification,omitempty"`
}

// DeliverableEdit pairs an original deliverable with its proposed rewording.
type DeliverableEdit struct {
	Original string `json:"original"`
	Proposed string `json:"proposed"`
}

// DeliverablesChange records deliverable additions, removals and edits.
type DeliverablesChange struct {
	Added    []string          `json:"added"`
	Removed  []string          `json:"removed"`
	Modified []DeliverableEdit `json:"modified"`
}

// TermsChange carries free-form additional terms.
type TermsChange struct {
	AdditionalTerms string `json:"additionalTerms"`
}

// CounterOfferChanges is the full delta proposed in a counter offer.
type CounterOfferChanges struct {
	Pricing      *PricingChange      `json:"pricing,omitempty"`
	Timeline     *TimelineChange     `json:"timeline,omitempty"`
	Deliverables *DeliverablesChange `json:"deliverables,omitempty"`
	Terms        *TermsChange        `json:"terms,omitempty"`
}

type OfferCounterProposedData struct {
	OriginalOfferID  string              `json:"originalOfferId"`
	CounterOfferID   string              `json:"counterOfferId"`
	RequestID        string              `json:"requestId"`
	SellerID         string              `json:"sellerId"`
	BuyerID          string              `json:"buyerId"`
	ProposedBy       string              `json:"proposedBy"` // seller or buyer
	Changes          CounterOfferChanges `json:"changes"`
	NegotiationRound int                 `json:"negotiationRound"`
	ExpiresAt        string              `json:"expiresAt"`
}

func NewOfferCreated(data OfferCreatedData, opts ...Option) Envelope[OfferCreatedData] {
	return New(OfferCreated, data, opts...)
}

func NewOfferUpdated(data OfferUpdatedData, opts ...Option) Envelope[OfferUpdatedData] {
	return New(OfferUpdated, data, opts...)
}

func NewOfferAccepted(data OfferAcceptedData, opts ...Option) Envelope[OfferAcceptedData] {
	return New(OfferAccepted, data, opts...)
}

func NewOfferRejected(data OfferRejectedData, opts ...Option) Envelope[OfferRejectedData] {
	return New(OfferRejected, data, opts...)
}

func NewOfferWithdrawn(data OfferWithdrawnData, opts ...Option) Envelope[OfferWithdrawnData] {
	return New(OfferWithdrawn, data, opts...)
}

func NewOfferExpired(data OfferExpiredData, opts ...Option) Envelope[OfferExpiredData] {
	return New(OfferExpired, data, opts...)
}

func NewOfferCounterProposed(data OfferCounterProposedData, opts ...Option) Envelope[OfferCounterProposedData] {
	return New(OfferCounterProposed, data, opts...)
}
