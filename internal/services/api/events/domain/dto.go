// Package domain holds detected events and their recognitions
package domain

import "airwatch/internal/modkit/repokit"

// Detection categories accepted by the category filter
const (
	CategoryAds      = "ads"
	CategoryChannels = "channels"
	CategoryContent  = "content"
)

// Detection is one ad, channel or content recognition attached to an event
type Detection struct {
	ID      int64    `json:"id" example:"12"`
	EventID int64    `json:"event_id,string" example:"100231"`
	Name    string   `json:"name" example:"Coca-Cola"`
	Score   *float64 `json:"score" example:"0.93"`
}

// Event is one detection frame reported by a capture device
// ids and timestamps travel as decimal strings
type Event struct {
	ID        int64       `json:"id,string" example:"100231"`
	DeviceID  string      `json:"device_id" example:"dev-kathmandu-01"`
	Timestamp int64       `json:"timestamp,string" example:"1717200000"`
	Type      int         `json:"type" example:"1"`
	ImagePath *string     `json:"image_path,omitempty"`
	MaxScore  *float64    `json:"max_score,omitempty"`
	Ads       []Detection `json:"ads"`
	Channels  []Detection `json:"channels"`
	Content   []Detection `json:"content"`
}

// ListInput filters GET /events and GET /labels/unlabeled
// startDate and endDate accept epoch seconds or RFC3339 and are inclusive
type ListInput struct {
	repokit.Paging `query:",squash"`
	StartDate      string `query:"startDate" example:"2024-06-01T00:00:00Z"`
	EndDate        string `query:"endDate" example:"1717286399"`
	DeviceID       string `query:"deviceId" example:"dev-kathmandu-01"`
	Types          []int  `query:"types" example:"1,2"`
	Category       string `query:"category" validate:"omitempty,oneof=ads channels content" example:"ads"`
	Sort           string `query:"sort" validate:"omitempty,oneof=asc desc" example:"desc"`
}

// EventList is one page of events
type EventList struct {
	Events []Event
	Total  int64
}
