package domain

import "context"

// SinkPort appends detection events to the configured store.
// Hot-path callers treat Append as best effort: a sink error must never
// fail the detection that produced the event
type SinkPort interface {
	Append(ctx context.Context, ev DetectionEvent) error
}

// ReaderPort serves recent events for operators
type ReaderPort interface {
	Recent(ctx context.Context, in RecentInput) ([]DetectionEvent, error)
}
