package repo

import (
	"context"
	"strings"

	"stencil/internal/platform/store"
	"stencil/internal/services/events/domain"
)

// chTable is the ClickHouse target. DDL (managed out of band):
//
//	CREATE TABLE detection_events (
//	    id             UUID,
//	    correlation_id String,
//	    endpoint_name  LowCardinality(String),
//	    detected_type  LowCardinality(String),
//	    status         LowCardinality(String),
//	    latency_ms     Int64,
//	    error_details  Nullable(String),
//	    actor_id       String,
//	    created_at     DateTime64(3, 'UTC')
//	) ENGINE = MergeTree
//	ORDER BY (endpoint_name, created_at)
const chTable = "detection_events"

// CH implements the Repo interface on the ClickHouse seam. Column order
// matches the DDL above; the seam takes positional rows
type CH struct{ ch store.Clickhouse }

// NewCH creates a ClickHouse events repo
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("events.NewCH requires a non nil Clickhouse seam")
	}
	return &CH{ch: ch}
}

// Insert appends one detection event
func (r *CH) Insert(ctx context.Context, ev domain.DetectionEvent) error {
	row := []any{
		ev.ID,
		ev.CorrelationID,
		ev.EndpointName,
		ev.DetectedType,
		ev.Status,
		ev.LatencyMS,
		ev.ErrorDetails,
		ev.ActorID,
		ev.CreatedAt.UTC(),
	}
	return r.ch.Insert(ctx, chTable, [][]any{row})
}

// Recent lists the newest events, optionally scoped to one endpoint
func (r *CH) Recent(ctx context.Context, endpointName string, limit int) ([]domain.DetectionEvent, error) {
	var sb strings.Builder
	sb.WriteString(`
select id, correlation_id, endpoint_name, detected_type, status, latency_ms, error_details, actor_id, created_at
from detection_events`)
	args := []any{}
	if endpointName != "" {
		sb.WriteString(" where endpoint_name = ?")
		args = append(args, endpointName)
	}
	sb.WriteString(" order by created_at desc limit ?")
	args = append(args, limit)

	rows, err := r.ch.Query(ctx, sb.String(), args...)
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
