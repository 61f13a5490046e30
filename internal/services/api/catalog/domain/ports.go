package domain

import (
	"context"

	"stencil/internal/adapters/serving"
)

// ServicePort defines the service contract for the catalog
type ServicePort interface {
	Endpoints(ctx context.Context, in EndpointsInput) (EndpointsPage, error)
	Endpoint(ctx context.Context, name string) (serving.Endpoint, error)
}

// ControlPlanePort is the slice of the serving client the catalog needs
type ControlPlanePort interface {
	List(ctx context.Context) ([]serving.Endpoint, error)
	Get(ctx context.Context, name string) (serving.Endpoint, error)
}
