package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/giasu/internal/matching"
)

// catalogRepo implements CatalogRepo.
type catalogRepo struct {
	db *sql.DB
}

func (r *catalogRepo) Save(ctx context.Context, c matching.Catalog) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, u := range c.Universities {
			ins := builder.Insert(universitiesTable.Name).
				Columns("id", "name", "location", "type", "description").
				Values(u.ID, u.Name, u.Location, u.Type, u.Description).
				OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
			if _, err := execQuery(ctx, tx, ins); err != nil {
				return fmt.Errorf("save university %d: %w", u.ID, err)
			}
		}
		for _, s := range c.Scores {
			ins := builder.Insert(scoresTable.Name).
				Columns("university_id", "year", "min_score", "avg_score", "max_score").
				Values(s.UniversityID, s.Year, s.MinScore, s.AvgScore, s.MaxScore).
				OnConflict(entsql.ConflictColumns("university_id", "year"), entsql.ResolveWithNewValues())
			if _, err := execQuery(ctx, tx, ins); err != nil {
				return fmt.Errorf("save score %d/%d: %w", s.UniversityID, s.Year, err)
			}
		}
		return nil
	})
}

func (r *catalogRepo) Load(ctx context.Context) (matching.Catalog, error) {
	var c matching.Catalog

	usel := builder.Select("id", "name", "location", "type", "description").
		From(builder.Table(universitiesTable.Name)).
		OrderBy("id")
	rows, err := selectRows(ctx, r.db, usel)
	if err != nil {
		return c, fmt.Errorf("load universities: %w", err)
	}
	for rows.Next() {
		var u matching.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Location, &u.Type, &u.Description); err != nil {
			rows.Close()
			return c, fmt.Errorf("scan university: %w", err)
		}
		c.Universities = append(c.Universities, u)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return c, fmt.Errorf("load universities: %w", err)
	}

	ssel := builder.Select("university_id", "year", "min_score", "avg_score", "max_score").
		From(builder.Table(scoresTable.Name)).
		OrderBy("university_id", "year")
	rows, err = selectRows(ctx, r.db, ssel)
	if err != nil {
		return c, fmt.Errorf("load scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s matching.Score
		if err := rows.Scan(&s.UniversityID, &s.Year, &s.MinScore, &s.AvgScore, &s.MaxScore); err != nil {
			return c, fmt.Errorf("scan score: %w", err)
		}
		c.Scores = append(c.Scores, s)
	}
	if err := rows.Err(); err != nil {
		return c, fmt.Errorf("load scores: %w", err)
	}
	return c, nil
}
