// Package adapters converts service-internal records into the canonical
// event payloads of the catalog. Adapter functions are pure: they do no I/O,
// generate no ids, and normalize only what the contract prescribes: dates
// to ISO-8601 UTC text, coordinates to [longitude, latitude] pairs.
package adapters

import "errors"

// ErrInvalidLocationFormat reports a location value matching none of the
// three recognized shapes. Adapters raise it rather than defaulting to a
// placeholder coordinate.
var ErrInvalidLocationFormat = errors.New("invalid location format")

// LocationInput is a location in any of the three shapes adapters accept:
// an already-ordered [longitude, latitude] pair, a lat/lng pair, or a
// latitude/longitude pair. Exactly the fields of one shape should be set.
type LocationInput struct {
	Lat         *float64
	Lng         *float64
	Latitude    *float64
	Longitude   *float64
	Coordinates []float64 // [longitude, latitude]
}

// Location is the normalized result: both the lat/lng view and the
// geospatial-storage ordered pair.
type Location struct {
	Lat         float64
	Lng         float64
	Coordinates [2]float64 // [longitude, latitude]
}

// ConvertLocationFormats normalizes any of the three recognized location
// shapes. The ordered pair wins if present, then lat/lng, then
// latitude/longitude; anything else is ErrInvalidLocationFormat.
func ConvertLocationFormats(in LocationInput) (Location, error) {
	var lat, lng float64

	switch {
	case in.Coordinates != nil:
		if len(in.Coordinates) != 2 {
			return Location{}, ErrInvalidLocationFormat
		}
		lng, lat = in.Coordinates[0], in.Coordinates[1]
	case in.Lat != nil && in.Lng != nil:
		lat, lng = *in.Lat, *in.Lng
	case in.Latitude != nil && in.Longitude != nil:
		lat, lng = *in.Latitude, *in.Longitude
	default:
		return Location{}, ErrInvalidLocationFormat
	}

	return Location{
		Lat:         lat,
		Lng:         lng,
		Coordinates: [2]float64{lng, lat},
	}, nil
}

// ToGeoCoordinates converts a lat/lng pair to the [longitude, latitude]
// storage order.
func ToGeoCoordinates(lat, lng float64) [2]float64 {
	return [2]float64{lng, lat}
}

// FromGeoCoordinates converts an ordered [longitude, latitude] pair back to
// a lat/lng view.
func FromGeoCoordinates(coordinates [2]float64) (lat, lng float64) {
	return coordinates[1], coordinates[0]
}
