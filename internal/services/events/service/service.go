// Package service contains the detection event log workflows
package service

import (
	"context"

	perr "stencil/internal/platform/errors"
	"stencil/internal/services/events/domain"
	"stencil/internal/services/events/repo"
)

// limits for the recent listing
const (
	defaultRecentLimit = 100
	maxRecentLimit     = 500
)

// Service implements domain.SinkPort and domain.ReaderPort over either
// events backend. The sink is append only; nothing here mutates rows
type Service struct {
	Repo repo.Repo
}

// New creates the events service over an already bound repo
func New(r repo.Repo) *Service {
	if r == nil {
		panic("events.Service requires a non nil Repo")
	}
	return &Service{Repo: r}
}

// Append writes one detection event. Callers on the detection hot path
// treat errors as best effort; this method still reports them so tests
// and the ops surface can see sink health
func (s *Service) Append(ctx context.Context, ev domain.DetectionEvent) error {
	if err := s.Repo.Insert(ctx, ev); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "events sink append failed")
	}
	return nil
}

// Recent lists the newest detection events for operators
func (s *Service) Recent(ctx context.Context, in domain.RecentInput) ([]domain.DetectionEvent, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	out, err := s.Repo.Recent(ctx, in.EndpointName, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "events recent query failed")
	}
	return out, nil
}
