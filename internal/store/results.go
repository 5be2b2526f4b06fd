package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/giasu/internal/catalog"
	"github.com/abhisek/giasu/internal/grading"
)

// resultRepo implements ResultRepo.
type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var resultSelectColumns = []string{
	"id", "sequence", "attempt_id", "user_id", "test_id", "score", "total_questions",
	"correct_answers", "points_earned", "points_possible", "completed_at",
}

func (r *resultRepo) Save(ctx context.Context, res *grading.Result) (*StoredResult, bool, error) {
	var (
		stored  *StoredResult
		created bool
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		prev, err := latestResultID(ctx, tx, res.UserID, res.TestID)
		if err != nil {
			return err
		}
		if prev != 0 {
			answers, err := loadAnswers(ctx, tx, prev)
			if err != nil {
				return err
			}
			if sameAnswers(answers, res.Answers) {
				stored, err = getResult(ctx, tx, prev)
				return err
			}
		}

		stored, err = r.insert(ctx, tx, res)
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *resultRepo) insert(ctx context.Context, tx *sql.Tx, res *grading.Result) (*StoredResult, error) {
	seq, err := r.seq.Next(ctx, tx)
	if err != nil {
		return nil, err
	}

	stored := &StoredResult{
		Sequence:    seq,
		AttemptID:   uuid.NewString(),
		CompletedAt: time.Now().UTC(),
		Result:      *res,
	}
	stored.InvalidChoices = nil

	ins := builder.Insert(resultsTable.Name).
		Columns(resultSelectColumns[1:]...).
		Values(seq, stored.AttemptID, res.UserID, res.TestID, res.Score, res.TotalQuestions,
			res.CorrectAnswers, res.PointsEarned, res.PointsPossible, stored.CompletedAt)
	sqlRes, err := execQuery(ctx, tx, ins)
	if err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	if stored.ID, err = sqlRes.LastInsertId(); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	if len(res.Answers) > 0 {
		ains := builder.Insert(answersTable.Name).
			Columns("result_id", "question_id", "user_answer", "is_correct", "partial_credit", "points")
		for _, a := range res.Answers {
			ains.Values(stored.ID, a.QuestionID, catalog.FormatLetters(a.Letters), a.IsCorrect, a.PartialCredit, a.Points)
		}
		if _, err := execQuery(ctx, tx, ains); err != nil {
			return nil, fmt.Errorf("save answers of result %d: %w", stored.ID, err)
		}
	}
	stored.Answers = append([]grading.QuestionResult(nil), res.Answers...)
	return stored, nil
}

// sameAnswers reports whether two answer lists choose the same letters for
// the same questions in the same order.
func sameAnswers(a, b []grading.QuestionResult) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].QuestionID != b[i].QuestionID || a[i].Letters != b[i].Letters {
			return false
		}
	}
	return true
}

func latestResultID(ctx context.Context, q querier, userID, testID int64) (int64, error) {
	sel := builder.Select("id").
		From(builder.Table(resultsTable.Name)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("test_id", testID))).
		OrderBy(entsql.Desc("id")).
		Limit(1)
	var id int64
	err := selectRow(ctx, q, sel).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find latest result: %w", err)
	}
	return id, nil
}

func (r *resultRepo) Get(ctx context.Context, id int64) (*StoredResult, error) {
	return getResult(ctx, r.db, id)
}

func getResult(ctx context.Context, q querier, id int64) (*StoredResult, error) {
	sel := builder.Select(resultSelectColumns...).
		From(builder.Table(resultsTable.Name)).
		Where(entsql.EQ("id", id))
	sr, err := scanResult(selectRow(ctx, q, sel))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load result %d: %w", id, err)
	}
	if sr.Answers, err = loadAnswers(ctx, q, id); err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *resultRepo) ListByUser(ctx context.Context, userID int64) ([]*StoredResult, error) {
	sel := builder.Select(resultSelectColumns...).
		From(builder.Table(resultsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("id"))
	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list results of user %d: %w", userID, err)
	}

	var results []*StoredResult
	for rows.Next() {
		sr, err := scanResult(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, sr)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("list results of user %d: %w", userID, err)
	}

	// Answers are loaded after rows is closed: the store holds one connection.
	for _, sr := range results {
		if sr.Answers, err = loadAnswers(ctx, r.db, sr.ID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *resultRepo) Summary(ctx context.Context, userID int64) (ScoreSummary, error) {
	sel := builder.Select(entsql.Avg("score"), entsql.Count("*")).
		From(builder.Table(resultsTable.Name)).
		Where(entsql.EQ("user_id", userID))
	var mean sql.NullFloat64
	sum := ScoreSummary{UserID: userID}
	if err := selectRow(ctx, r.db, sel).Scan(&mean, &sum.Count); err != nil {
		return ScoreSummary{}, fmt.Errorf("summarize results of user %d: %w", userID, err)
	}
	sum.Mean = mean.Float64
	return sum, nil
}

func (r *resultRepo) Progress(ctx context.Context, userID int64) (Progress, error) {
	p := Progress{UserID: userID}
	taken := builder.Select(entsql.Count(entsql.Distinct("test_id"))).
		From(builder.Table(resultsTable.Name)).
		Where(entsql.EQ("user_id", userID))
	if err := selectRow(ctx, r.db, taken).Scan(&p.TestsTaken); err != nil {
		return Progress{}, fmt.Errorf("count tests taken by user %d: %w", userID, err)
	}
	total := builder.Select(entsql.Count("*")).From(builder.Table(testsTable.Name))
	if err := selectRow(ctx, r.db, total).Scan(&p.TotalTests); err != nil {
		return Progress{}, fmt.Errorf("count tests: %w", err)
	}
	p.Percent = grading.Percentage(float64(p.TestsTaken), float64(p.TotalTests))
	return p, nil
}

func scanResult(s scanner) (*StoredResult, error) {
	var sr StoredResult
	err := s.Scan(&sr.ID, &sr.Sequence, &sr.AttemptID, &sr.UserID, &sr.TestID, &sr.Score,
		&sr.TotalQuestions, &sr.CorrectAnswers, &sr.PointsEarned, &sr.PointsPossible, &sr.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func loadAnswers(ctx context.Context, q querier, resultID int64) ([]grading.QuestionResult, error) {
	sel := builder.Select("question_id", "user_answer", "is_correct", "partial_credit", "points").
		From(builder.Table(answersTable.Name)).
		Where(entsql.EQ("result_id", resultID)).
		OrderBy("id")
	rows, err := selectRows(ctx, q, sel)
	if err != nil {
		return nil, fmt.Errorf("load answers of result %d: %w", resultID, err)
	}
	defer rows.Close()

	var answers []grading.QuestionResult
	for rows.Next() {
		var (
			a   grading.QuestionResult
			raw string
		)
		if err := rows.Scan(&a.QuestionID, &raw, &a.IsCorrect, &a.PartialCredit, &a.Points); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.Letters = catalog.ParseAnswer(raw)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
