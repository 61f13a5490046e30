// Package domain holds DTOs and ports for user preferences
package domain

import "encoding/json"

// GetInput names one preference key
type GetInput struct {
	Key string `json:"key" validate:"required,min=1,max=128" example:"last_endpoint"`
}

// SetInput upserts one preference. Value is stored verbatim as JSON
type SetInput struct {
	Key   string          `json:"key" validate:"required,min=1,max=128" example:"last_endpoint"`
	Value json.RawMessage `json:"value" validate:"required" swaggertype:"object"`
}

// DeleteInput names one preference key to remove
type DeleteInput struct {
	Key string `json:"key" validate:"required,min=1,max=128" example:"last_endpoint"`
}

// ListInput filters the listing; an empty prefix lists everything
type ListInput struct {
	Prefix string `json:"prefix,omitempty" validate:"omitempty,max=128" example:"workbench."`
}

// Pref is one stored preference
type Pref struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value" swaggertype:"object"`
	UpdatedAt string          `json:"updated_at"`
}

// DeletedResponse acknowledges a delete
type DeletedResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}
