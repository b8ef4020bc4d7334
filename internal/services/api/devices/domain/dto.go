// Package domain holds the capture device types
package domain

import "airwatch/internal/modkit/repokit"

// Device is a registered capture device
type Device struct {
	DeviceID string `json:"device_id" example:"dev-kathmandu-01"`
	IsActive bool   `json:"is_active" example:"true"`
}

// RegisterInput is the body of POST /devices/register
type RegisterInput struct {
	DeviceID string `json:"device_id" validate:"required,max=255" example:"dev-kathmandu-01"`
	IsActive *bool  `json:"is_active" example:"true"`
}

// UpdateInput is the body of PUT /devices/{device_id}
type UpdateInput struct {
	IsActive *bool `json:"is_active" validate:"required" example:"false"`
}

// ListInput filters GET /devices
type ListInput struct {
	repokit.Paging `query:",squash"`
	IsActive       *bool `query:"is_active" example:"true"`
}

// DeviceList is one page of devices
type DeviceList struct {
	Devices []Device
	Total   int64
}
