package domain

import "context"

// ServicePort defines the service contract for preferences.
// Every operation is scoped to the acting user; one actor can never see
// another actor's keys
type ServicePort interface {
	Get(ctx context.Context, actorID string, in GetInput) (Pref, error)
	Set(ctx context.Context, actorID string, in SetInput) (Pref, error)
	Delete(ctx context.Context, actorID string, in DeleteInput) error
	List(ctx context.Context, actorID string, in ListInput) ([]Pref, error)
}
