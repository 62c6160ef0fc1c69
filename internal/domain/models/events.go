package models

import "time"

type EventType string

const (
	EventBooking EventType = "booking"
	EventDecline EventType = "decline"
)

// TrainingEvent is an append-only record of a booking confirmation or a
// quote decline. Identity is a generated id; events are never mutated.
type TrainingEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	RequestID   string    `json:"requestId"`
	CustomerID  string    `json:"customerId,omitempty"`
	ForwarderID string    `json:"forwarderId,omitempty"`
	BookingID   string    `json:"bookingId,omitempty"`
	FinalPrice  float64   `json:"finalPrice,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	LoggedAt    time.Time `json:"loggedAt"`
}

// AnalyticsSnapshot is the singleton counter document, updated with every
// logged event.
type AnalyticsSnapshot struct {
	TotalRequests int64   `json:"totalRequests"`
	TotalBookings int64   `json:"totalBookings"`
	TotalDeclines int64   `json:"totalDeclines"`
	WinRate       float64 `json:"winRate"`
}

// RecentWindow holds rolling metrics over the trailing window.
type RecentWindow struct {
	Days     int     `json:"days"`
	Bookings int64   `json:"bookings"`
	Declines int64   `json:"declines"`
	WinRate  float64 `json:"winRate"`
}

// ModelPerformance is a simulated block for the dashboard. It is randomly
// generated, not computed from real events.
type ModelPerformance struct {
	Accuracy   float64 `json:"accuracy"`
	MAE        float64 `json:"mae"`
	RMSE       float64 `json:"rmse"`
	SampleSize int     `json:"sampleSize"`
}

// AnalyticsReport is the full /api/analytics response body.
type AnalyticsReport struct {
	AnalyticsSnapshot
	Recent           RecentWindow     `json:"recent"`
	ModelPerformance ModelPerformance `json:"modelPerformance"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
