package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the global monotonic sequence shared by graded
// results and LLM request events, so the two kinds of records can be
// interleaved in the order they happened.
//
// The increment is raw SQL because the builder has no atomic
// update-returning form. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
}

// newSequenceCounter seeds the counter row if it does not exist yet.
func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	seed := builder.Insert(sequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing())
	if _, err := execQuery(ctx, db, seed); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{}, nil
}

// Next returns the next sequence number and increments the counter. q is
// the connection or transaction the caller is already using.
func (sc *sequenceCounter) Next(ctx context.Context, q querier) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := q.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
