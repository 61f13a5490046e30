// Package service contains catalog workflows
package service

import (
	"context"
	"sort"

	"stencil/internal/adapters/serving"
	"stencil/internal/services/api/catalog/domain"
)

const defaultPageSize = 50

// Service implements domain.ServicePort over the serving control plane
type Service struct {
	CP domain.ControlPlanePort
}

// New creates a new catalog service
func New(cp domain.ControlPlanePort) *Service {
	if cp == nil {
		panic("catalog.Service requires a non nil ControlPlanePort")
	}
	return &Service{CP: cp}
}

// Endpoints lists serving endpoints ordered by name. The cursor is the
// last name of the previous page; the control plane listing is small
// enough to sort in memory
func (s *Service) Endpoints(ctx context.Context, in domain.EndpointsInput) (domain.EndpointsPage, error) {
	all, err := s.CP.List(ctx)
	if err != nil {
		return domain.EndpointsPage{}, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	start := 0
	if in.Cursor != "" {
		start = sort.Search(len(all), func(i int) bool { return all[i].Name > in.Cursor })
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	page := domain.EndpointsPage{Endpoints: all[start:end]}
	if end < len(all) {
		page.NextCursor = all[end-1].Name
	}
	if page.Endpoints == nil {
		page.Endpoints = []serving.Endpoint{}
	}
	return page, nil
}

// Endpoint returns metadata for one endpoint by name
func (s *Service) Endpoint(ctx context.Context, name string) (serving.Endpoint, error) {
	return s.CP.Get(ctx, name)
}
