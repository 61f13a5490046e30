package domain

import (
	"context"

	"stencil/internal/core/classify"
	"stencil/internal/core/schema"
	eventsdom "stencil/internal/services/events/domain"
)

// ServicePort drives detection and session lifecycle
type ServicePort interface {
	// Detect runs the detection state machine. It never returns an error:
	// every failure converges on a well formed Result
	Detect(ctx context.Context, req Request) Result

	// ClearSession drops one session's cached results and invoke blocks
	ClearSession(sessionID string)
}

// GuardPort answers whether invoke passthrough is blocked for a session
// endpoint pair. A permission denied detection blocks the pair until the
// session cache is cleared
type GuardPort interface {
	InvokeBlocked(sessionID, endpointName string) bool
}

// MetadataPort resolves endpoint metadata for classification
type MetadataPort interface {
	Endpoint(ctx context.Context, name string) (classify.Metadata, error)
}

// SchemaSource fetches the raw input signature for a registered model version
type SchemaSource interface {
	ModelSchema(ctx context.Context, name, version string) ([]byte, error)
}

// SchemaFetcher applies the retry and deadline policy over a SchemaSource
type SchemaFetcher interface {
	Fetch(ctx context.Context, name, version string) (*schema.Schema, error)
}

// Ports are dependencies injected into the detect module
type Ports struct {
	Metadata MetadataPort       // required
	Source   SchemaSource       // required
	Events   eventsdom.SinkPort // required
}
