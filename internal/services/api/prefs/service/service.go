// Package service contains preference workflows
package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"stencil/internal/modkit/repokit"
	perr "stencil/internal/platform/errors"
	"stencil/internal/platform/store"
	"stencil/internal/services/api/prefs/domain"
	"stencil/internal/services/api/prefs/repo"
)

// Service implements domain.ServicePort
type Service struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new prefs service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	if db == nil {
		panic("prefs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("prefs.Service requires a non nil Repo binder")
	}
	return &Service{Repo: binder.Bind(db), binder: binder, db: db}
}

// Get returns one preference for the acting user
func (s *Service) Get(ctx context.Context, actorID string, in domain.GetInput) (domain.Pref, error) {
	row, err := s.Repo.Get(ctx, actorID, in.Key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Pref{}, perr.NotFoundf("preference %q not found", in.Key)
		}
		return domain.Pref{}, perr.FromPostgresf(err, "prefs get %q failed", in.Key)
	}
	return toPref(row), nil
}

// Set upserts one preference for the acting user. The write runs in a
// transaction with the actor stamped on the context so SQL tracing can
// attribute it
func (s *Service) Set(ctx context.Context, actorID string, in domain.SetInput) (domain.Pref, error) {
	var row repo.RowPref
	err := store.RunAsActor(ctx, s.db, actorID, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		row, err = s.binder.Bind(q).Upsert(ctx, actorID, in.Key, in.Value)
		return err
	})
	if err != nil {
		return domain.Pref{}, perr.FromPostgresf(err, "prefs set %q failed", in.Key)
	}
	return toPref(row), nil
}

// Delete removes one preference for the acting user
func (s *Service) Delete(ctx context.Context, actorID string, in domain.DeleteInput) error {
	var deleted bool
	err := store.RunAsActor(ctx, s.db, actorID, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		deleted, err = s.binder.Bind(q).Delete(ctx, actorID, in.Key)
		return err
	})
	if err != nil {
		return perr.FromPostgresf(err, "prefs delete %q failed", in.Key)
	}
	if !deleted {
		return perr.NotFoundf("preference %q not found", in.Key)
	}
	return nil
}

// List returns the acting user's preferences ordered by key
func (s *Service) List(ctx context.Context, actorID string, in domain.ListInput) ([]domain.Pref, error) {
	rows, err := s.Repo.List(ctx, actorID, in.Prefix)
	if err != nil {
		return nil, perr.FromPostgresf(err, "prefs list failed")
	}
	out := make([]domain.Pref, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPref(r))
	}
	return out, nil
}

func toPref(r repo.RowPref) domain.Pref {
	return domain.Pref{
		Key:       r.Key,
		Value:     r.Value,
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
