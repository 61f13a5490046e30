// Package repo provides storage for detection events
package repo

import (
	"context"

	"stencil/internal/modkit/repokit"
	"stencil/internal/services/events/domain"
)

// Repo defines the storage contract for detection events
type Repo interface {
	Insert(ctx context.Context, ev domain.DetectionEvent) error
	Recent(ctx context.Context, endpointName string, limit int) ([]domain.DetectionEvent, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert appends one detection event. The table is append only: rows are
// never updated or deleted by this service
func (r *queries) Insert(ctx context.Context, ev domain.DetectionEvent) error {
	const sql = `
insert into detection_events
	(id, correlation_id, endpoint_name, detected_type, status, latency_ms, error_details, actor_id, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.q.Exec(ctx, sql,
		ev.ID,
		ev.CorrelationID,
		ev.EndpointName,
		ev.DetectedType,
		ev.Status,
		ev.LatencyMS,
		ev.ErrorDetails,
		ev.ActorID,
		ev.CreatedAt.UTC(),
	)
	return err
}

// Recent lists the newest events, optionally scoped to one endpoint
func (r *queries) Recent(ctx context.Context, endpointName string, limit int) ([]domain.DetectionEvent, error) {
	const sql = `
select id, correlation_id, endpoint_name, detected_type, status, latency_ms, error_details, actor_id, created_at
from detection_events
where ($1 = '' or endpoint_name = $1)
order by created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, endpointName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DetectionEvent
	for rows.Next() {
		var ev domain.DetectionEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.CorrelationID,
			&ev.EndpointName,
			&ev.DetectedType,
			&ev.Status,
			&ev.LatencyMS,
			&ev.ErrorDetails,
			&ev.ActorID,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
