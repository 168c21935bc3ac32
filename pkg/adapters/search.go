package adapters

import (
	"time"

	"github.com/lokalmarket/marketplace-commons/pkg/event"
)

// BuyerRequest is the search service's native request record. Its location
// is a lat/lng pair, unlike the payload's [longitude, latitude] order.
type BuyerRequest struct {
	RequestID string
	BuyerID   string
	Content   event.RequestContent
	Lat       float64
	Lng       float64
	Address   string
	Radius    float64 // kilometers
	Category  string
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Offer is the search service's native offer record.
type Offer struct {
	OfferID           string
	RequestID         string
	SellerID          string
	Price             float64
	Currency          string
	Description       string
	EstimatedDelivery string
	Images            []string
	Status            string
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

// ToRequestCreated maps a buyer request to the REQUEST_CREATED payload,
// normalizing the service's lat/lng into the stored coordinate order.
func ToRequestCreated(request BuyerRequest) event.RequestCreatedData {
	radius := request.Radius
	return event.RequestCreatedData{
		RequestID: request.RequestID,
		BuyerID:   request.BuyerID,
		Content:   request.Content,
		Location: &event.RequestLocation{
			Coordinates: ToGeoCoordinates(request.Lat, request.Lng),
			Address:     request.Address,
			Radius:      &radius,
		},
		Category:  request.Category,
		Status:    request.Status,
		CreatedAt: isoUTC(request.CreatedAt),
		ExpiresAt: isoUTC(request.ExpiresAt),
	}
}

// ToOfferCreated maps an offer to the OFFER_CREATED payload.
func ToOfferCreated(offer Offer) event.OfferCreatedData {
	return event.OfferCreatedData{
		OfferID:           offer.OfferID,
		RequestID:         offer.RequestID,
		SellerID:          offer.SellerID,
		Price:             offer.Price,
		Currency:          offer.Currency,
		Description:       offer.Description,
		EstimatedDelivery: offer.EstimatedDelivery,
		Images:            offer.Images,
		Status:            offer.Status,
		CreatedAt:         isoUTC(offer.CreatedAt),
		ExpiresAt:         isoUTC(offer.ExpiresAt),
	}
}
