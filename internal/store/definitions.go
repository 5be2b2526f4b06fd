package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/giasu/internal/catalog"
	"github.com/abhisek/giasu/internal/grading"
)

// testRepo implements TestRepo.
type testRepo struct {
	db *sql.DB
}

func (r *testRepo) Save(ctx context.Context, def grading.Definition) (grading.Definition, error) {
	out := grading.Definition{Test: def.Test, Questions: make([]grading.Question, len(def.Questions))}
	copy(out.Questions, def.Questions)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		testID, err := upsertTest(ctx, tx, def.Test)
		if err != nil {
			return err
		}
		out.Test.ID = testID

		del := builder.Delete(questionsTable.Name).Where(entsql.EQ("test_id", testID))
		if _, err := execQuery(ctx, tx, del); err != nil {
			return fmt.Errorf("clear questions of test %d: %w", testID, err)
		}

		for i := range out.Questions {
			q := &out.Questions[i]
			q.TestID = testID
			id, err := insertQuestion(ctx, tx, i, *q)
			if err != nil {
				return fmt.Errorf("save question %d of test %d: %w", i, testID, err)
			}
			q.ID = id
		}
		return nil
	})
	if err != nil {
		return grading.Definition{}, err
	}
	return out, nil
}

func upsertTest(ctx context.Context, tx *sql.Tx, t grading.Test) (int64, error) {
	cols := []string{"title", "description", "created_by", "supports_multiple_answers", "created_at"}
	vals := []any{t.Title, t.Description, t.CreatedBy, t.SupportsMultipleAnswers, time.Now().UTC()}
	if t.ID != 0 {
		cols = append([]string{"id"}, cols...)
		vals = append([]any{t.ID}, vals...)
	}

	ins := builder.Insert(testsTable.Name).
		Columns(cols...).
		Values(vals...).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	res, err := execQuery(ctx, tx, ins)
	if err != nil {
		return 0, fmt.Errorf("save test: %w", err)
	}
	if t.ID != 0 {
		return t.ID, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save test: %w", err)
	}
	return id, nil
}

func insertQuestion(ctx context.Context, tx *sql.Tx, position int, q grading.Question) (int64, error) {
	cols := []string{"test_id", "position", "question_text", "option_a", "option_b", "option_c", "option_d",
		"question_type", "correct_options", "points"}
	vals := []any{q.TestID, position, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3],
		string(q.Type), catalog.FormatLetters(q.Correct), q.Points}
	if q.ID != 0 {
		cols = append([]string{"id"}, cols...)
		vals = append([]any{q.ID}, vals...)
	}

	res, err := execQuery(ctx, tx, builder.Insert(questionsTable.Name).Columns(cols...).Values(vals...))
	if err != nil {
		return 0, err
	}
	if q.ID != 0 {
		return q.ID, nil
	}
	return res.LastInsertId()
}

func (r *testRepo) Load(ctx context.Context, testID int64) (grading.Definition, error) {
	var def grading.Definition
	t := &def.Test

	sel := builder.Select("id", "title", "description", "created_by", "supports_multiple_answers").
		From(builder.Table(testsTable.Name)).
		Where(entsql.EQ("id", testID))
	err := selectRow(ctx, r.db, sel).Scan(&t.ID, &t.Title, &t.Description, &t.CreatedBy, &t.SupportsMultipleAnswers)
	if errors.Is(err, sql.ErrNoRows) {
		return grading.Definition{}, fmt.Errorf("test %d: %w", testID, ErrNotFound)
	}
	if err != nil {
		return grading.Definition{}, fmt.Errorf("load test %d: %w", testID, err)
	}

	qsel := builder.Select("id", "question_text", "option_a", "option_b", "option_c", "option_d",
		"question_type", "correct_options", "points").
		From(builder.Table(questionsTable.Name)).
		Where(entsql.EQ("test_id", testID)).
		OrderBy("position", "id")
	rows, err := selectRows(ctx, r.db, qsel)
	if err != nil {
		return grading.Definition{}, fmt.Errorf("load questions of test %d: %w", testID, err)
	}
	defer rows.Close()

	for rows.Next() {
		q := grading.Question{TestID: testID}
		var qtype, correct string
		if err := rows.Scan(&q.ID, &q.Text, &q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
			&qtype, &correct, &q.Points); err != nil {
			return grading.Definition{}, fmt.Errorf("scan question: %w", err)
		}
		q.Type = grading.QuestionType(qtype)
		if q.Correct, err = catalog.ParseLetters(correct); err != nil {
			return grading.Definition{}, fmt.Errorf("question %d: %w", q.ID, err)
		}
		def.Questions = append(def.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return grading.Definition{}, fmt.Errorf("load questions of test %d: %w", testID, err)
	}
	return def, nil
}

func (r *testRepo) List(ctx context.Context) ([]grading.Test, error) {
	sel := builder.Select("id", "title", "description", "created_by", "supports_multiple_answers").
		From(builder.Table(testsTable.Name)).
		OrderBy("id")
	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer rows.Close()

	var tests []grading.Test
	for rows.Next() {
		var t grading.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedBy, &t.SupportsMultipleAnswers); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
