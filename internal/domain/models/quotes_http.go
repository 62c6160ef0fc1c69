package models

// Requests for the quoting HTTP endpoints. Defined in domain for consistency
// and reuse. Unknown cargo/service values are accepted here on purpose: the
// pricing tables degrade them to neutral multipliers rather than rejecting.

type PredictRateRequest struct {
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	CargoType   string  `json:"cargoType" validate:"required"`
	Weight      float64 `json:"weight" validate:"required,gt=0"`
	Volume      float64 `json:"volume" validate:"gte=0"`
	ServiceType string  `json:"serviceType" default:"standard"`
	CustomerID  string  `json:"customerId"`
	ForwarderID string  `json:"forwarderId"`
}

func (r PredictRateRequest) QuoteRequest() QuoteRequest {
	return QuoteRequest{
		Origin:      r.Origin,
		Destination: r.Destination,
		CargoType:   r.CargoType,
		Weight:      r.Weight,
		Volume:      r.Volume,
		ServiceType: r.ServiceType,
		CustomerID:  r.CustomerID,
		ForwarderID: r.ForwarderID,
	}
}

type ConfirmBookingRequest struct {
	RequestID   string  `json:"requestId" validate:"required"`
	BookingID   string  `json:"bookingId" validate:"required"`
	FinalPrice  float64 `json:"finalPrice" validate:"required,gt=0"`
	CustomerID  string  `json:"customerId"`
	ForwarderID string  `json:"forwarderId"`
}

type DeclineQuoteRequest struct {
	RequestID   string `json:"requestId" validate:"required"`
	Reason      string `json:"reason"`
	CustomerID  string `json:"customerId"`
	ForwarderID string `json:"forwarderId"`
}

type MarketFeedRequest struct {
	Origin      string `query:"origin" validate:"required"`
	Destination string `query:"destination" validate:"required"`
	CargoType   string `query:"cargoType" default:"general"`
}
