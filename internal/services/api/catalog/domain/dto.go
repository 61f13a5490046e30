// Package domain holds DTOs and ports for the endpoint catalog
package domain

import "stencil/internal/adapters/serving"

// EndpointsInput pages through the workspace serving endpoints
type EndpointsInput struct {
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	Cursor string `json:"cursor,omitempty" validate:"omitempty,max=200" example:"support-chat"`
}

// EndpointsPage is one page of the catalog listing
type EndpointsPage struct {
	Endpoints []serving.Endpoint `json:"endpoints"`

	// NextCursor is the name of the last endpoint on this page; pass it
	// back verbatim to resume strictly after it. Empty on the last page
	NextCursor string `json:"next_cursor,omitempty"`
}

// EndpointInput names one endpoint
type EndpointInput struct {
	Name string `json:"name" validate:"required,min=1,max=200" example:"support-chat"`
}
