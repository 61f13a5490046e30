package serving

import (
	"context"

	"stencil/internal/core/classify"
)

// Metadata implements detect's MetadataPort against the serving control plane
type Metadata struct{ c *Client }

// NewMetadata constructs a Metadata lookup using the given serving client.
// (Name chosen to avoid confusion with NewClient.)
func NewMetadata(c *Client) *Metadata { return &Metadata{c: c} }

// Endpoint performs GET /serving-endpoints/{name} and keeps only the
// fields classification cares about
func (m *Metadata) Endpoint(ctx context.Context, name string) (classify.Metadata, error) {
	ep, err := m.c.Get(ctx, name)
	if err != nil {
		return classify.Metadata{}, err
	}
	return classify.Metadata{
		Name:         ep.Name,
		ModelName:    ep.ModelName,
		ModelVersion: ep.ModelVersion,
	}, nil
}
