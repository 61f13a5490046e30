// Package domain holds DTOs and ports for endpoint invocation
package domain

import "encoding/json"

// InvokeInput carries the payload to forward to one serving endpoint
type InvokeInput struct {
	EndpointName string          `json:"endpoint_name" validate:"required,min=1,max=200" example:"support-chat"`
	Payload      json.RawMessage `json:"payload" validate:"required" swaggertype:"object"`
}

// InvokeResponse is the upstream response, verbatim. Non-2xx statuses are
// data here so the workbench can render model errors in place
type InvokeResponse struct {
	Status      int    `json:"status" example:"200"`
	ContentType string `json:"content_type,omitempty" example:"application/json"`
	Body        any    `json:"body"`
	LatencyMS   int64  `json:"latency_ms" example:"842"`
}
