// Package domain defines schema detection types and ports
package domain

import (
	"time"

	"stencil/internal/core/classify"
	"stencil/internal/core/schema"
)

// DetectionStatus describes how a detection attempt concluded
type DetectionStatus string

// Detection statuses
const (
	StatusSuccess DetectionStatus = "success"
	StatusFailure DetectionStatus = "failure"
	StatusTimeout DetectionStatus = "timeout"
)

// Request is one detection ask. Session and actor come from middleware,
// never from the request body
type Request struct {
	SessionID     string
	ActorID       string
	EndpointName  string
	CorrelationID string
}

// Result is what every detection attempt produces. Failures are results
// too: nothing escapes the orchestrator as an error.
//
// Invariants: Schema is non nil only for a successful custom model
// detection; ErrorMessage is empty iff Status is success; ExampleJSON is
// always populated, with the fallback template when no schema could be
// determined. PermissionDenied marks the one failure class that also
// blocks downstream invocation of the endpoint
type Result struct {
	EndpointName     string                `json:"endpoint_name"`
	EndpointType     classify.EndpointType `json:"endpoint_type"`
	Schema           *schema.Schema        `json:"schema,omitempty"`
	ExampleJSON      map[string]any        `json:"example_json"`
	Status           DetectionStatus       `json:"status"`
	ErrorMessage     string                `json:"error_message,omitempty"`
	CorrelationID    string                `json:"correlation_id"`
	LatencyMS        int64                 `json:"latency_ms"`
	DetectedAt       time.Time             `json:"detected_at"`
	PermissionDenied bool                  `json:"permission_denied,omitempty"`
}
