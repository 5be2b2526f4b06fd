package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/giasu/internal/matching"
)

// preferenceRepo implements PreferenceRepo.
type preferenceRepo struct {
	db *sql.DB
}

func (r *preferenceRepo) Save(ctx context.Context, p matching.Preference) error {
	ins := builder.Insert(preferencesTable.Name).
		Columns("user_id", "preferred_major", "current_score", "expected_score", "created_at").
		Values(p.UserID, p.PreferredMajor, p.CurrentScore, p.ExpectedScore, time.Now().UTC())
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save preference of user %d: %w", p.UserID, err)
	}
	return nil
}

func (r *preferenceRepo) Latest(ctx context.Context, userID int64) (matching.Preference, error) {
	sel := builder.Select("user_id", "preferred_major", "current_score", "expected_score").
		From(builder.Table(preferencesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("id")).
		Limit(1)

	var p matching.Preference
	err := selectRow(ctx, r.db, sel).Scan(&p.UserID, &p.PreferredMajor, &p.CurrentScore, &p.ExpectedScore)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("preference of user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("load preference of user %d: %w", userID, err)
	}
	return p, nil
}
