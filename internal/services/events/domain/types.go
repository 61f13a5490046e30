// Package domain defines detection event types and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DetectionEvent is one append-only detection outcome record.
// Rows are never mutated or deleted by this service
type DetectionEvent struct {
	ID            uuid.UUID `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	EndpointName  string    `json:"endpoint_name"`
	DetectedType  string    `json:"detected_type"`
	Status        string    `json:"status"`
	LatencyMS     int64     `json:"latency_ms"`
	ErrorDetails  *string   `json:"error_details,omitempty"`
	ActorID       string    `json:"actor_id"`
	CreatedAt     time.Time `json:"created_at"`
}
