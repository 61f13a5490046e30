// Package repo provides postgres access for user preferences
package repo

import (
	"context"
	"encoding/json"
	"time"

	"stencil/internal/modkit/repokit"
)

// Repo defines the repository contract for preferences
type Repo interface {
	Get(ctx context.Context, actorID, key string) (RowPref, error)
	Upsert(ctx context.Context, actorID, key string, value json.RawMessage) (RowPref, error)
	Delete(ctx context.Context, actorID, key string) (bool, error)
	List(ctx context.Context, actorID, prefix string) ([]RowPref, error)
}

// RowPref represents a preference row from the database
type RowPref struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
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

func (r *queries) Get(ctx context.Context, actorID, key string) (RowPref, error) {
	const sql = `
select key, value, updated_at
from user_prefs
where actor_id = $1 and key = $2
`
	var p RowPref
	err := r.q.QueryRow(ctx, sql, actorID, key).Scan(&p.Key, &p.Value, &p.UpdatedAt)
	return p, err
}

func (r *queries) Upsert(ctx context.Context, actorID, key string, value json.RawMessage) (RowPref, error) {
	const sql = `
insert into user_prefs (actor_id, key, value, updated_at)
values ($1, $2, $3, now())
on conflict (actor_id, key) do update
	set value = excluded.value, updated_at = now()
returning key, value, updated_at
`
	var p RowPref
	err := r.q.QueryRow(ctx, sql, actorID, key, value).Scan(&p.Key, &p.Value, &p.UpdatedAt)
	return p, err
}

func (r *queries) Delete(ctx context.Context, actorID, key string) (bool, error) {
	const sql = `delete from user_prefs where actor_id = $1 and key = $2`
	tag, err := r.q.Exec(ctx, sql, actorID, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) List(ctx context.Context, actorID, prefix string) ([]RowPref, error) {
	const sql = `
select key, value, updated_at
from user_prefs
where actor_id = $1
and ($2 = '' or key like $2 || '%')
order by key
`
	rows, err := r.q.Query(ctx, sql, actorID, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RowPref
	for rows.Next() {
		var p RowPref
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
