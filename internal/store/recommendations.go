package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/giasu/internal/matching"
)

// recommendationRepo implements RecommendationRepo.
type recommendationRepo struct {
	db *sql.DB
}

// SaveRun records a run header even when recs is empty, so Latest always
// reflects the newest ranking.
func (r *recommendationRepo) SaveRun(ctx context.Context, userID int64, recs []matching.Recommendation) (*RecommendationRun, error) {
	run := &RecommendationRun{
		RunID:           uuid.NewString(),
		UserID:          userID,
		CreatedAt:       time.Now().UTC(),
		Recommendations: append([]matching.Recommendation(nil), recs...),
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		header := builder.Insert(recommendationRunsTable.Name).
			Columns("run_id", "user_id", "size", "created_at").
			Values(run.RunID, userID, len(recs), run.CreatedAt)
		if _, err := execQuery(ctx, tx, header); err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		ins := builder.Insert(recommendationsTable.Name).
			Columns("run_id", "user_id", "university_id", "rank", "year", "min_score", "avg_score",
				"max_score", "gap", "major_match", "created_at")
		for i, rec := range recs {
			ins.Values(run.RunID, userID, rec.UniversityID, i+1, rec.Band.Year, rec.Band.MinScore,
				rec.Band.AvgScore, rec.Band.MaxScore, rec.Gap, rec.MajorMatch, run.CreatedAt)
		}
		_, err := execQuery(ctx, tx, ins)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save recommendations of user %d: %w", userID, err)
	}
	return run, nil
}

func (r *recommendationRepo) Latest(ctx context.Context, userID int64) (*RecommendationRun, error) {
	last := builder.Select("run_id", "created_at").
		From(builder.Table(recommendationRunsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("id")).
		Limit(1)
	run := &RecommendationRun{UserID: userID}
	err := selectRow(ctx, r.db, last).Scan(&run.RunID, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recommendations of user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find latest recommendation run: %w", err)
	}

	// Aliases must be set before C() renders column names.
	rt := builder.Table(recommendationsTable.Name).As("r")
	ut := builder.Table(universitiesTable.Name).As("u")
	sel := builder.Select(
		rt.C("university_id"), ut.C("name"), rt.C("year"), rt.C("min_score"), rt.C("avg_score"),
		rt.C("max_score"), rt.C("gap"), rt.C("major_match"),
	).
		From(rt).
		Join(ut).On(rt.C("university_id"), ut.C("id")).
		Where(entsql.EQ(rt.C("run_id"), run.RunID)).
		OrderBy(rt.C("rank"))
	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("load recommendation run %s: %w", run.RunID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec matching.Recommendation
		b := &rec.Band
		if err := rows.Scan(&rec.UniversityID, &rec.Name, &b.Year, &b.MinScore, &b.AvgScore,
			&b.MaxScore, &rec.Gap, &rec.MajorMatch); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		run.Recommendations = append(run.Recommendations, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load recommendation run %s: %w", run.RunID, err)
	}
	return run, nil
}
