package store

import "context"

// RunAsActor wraps ctx with the caller identity and calls fn inside the provided TxRunner
func RunAsActor(ctx context.Context, tx TxRunner, actorID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithActor(ctx, actorID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}

// RunInTx calls fn inside the provided TxRunner without touching the context
func RunInTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
