package app

import (
	"context"
	"fmt"

	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/store"
)

// Attempt is a graded and recorded submission.
type Attempt struct {
	Result *store.StoredResult
	// Created is false when the answers repeated the user's latest attempt
	// at the same test and the earlier result was returned instead.
	Created        bool
	InvalidChoices []*grading.InvalidChoiceError
}

// GradeAndRecord loads the submission's test, grades it and records the
// result.
func (s *Service) GradeAndRecord(ctx context.Context, sub grading.Submission) (*Attempt, error) {
	def, err := s.opts.Tests.Load(ctx, sub.TestID)
	if err != nil {
		return nil, fmt.Errorf("load test %d: %w", sub.TestID, err)
	}
	res, err := grading.GradeSubmission(def, sub)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, res)
}

// GradeAll grades submissions for any number of tests and records them in
// input order. Each test is loaded once and its submissions are graded
// concurrently.
func (s *Service) GradeAll(ctx context.Context, subs []grading.Submission) ([]*Attempt, error) {
	byTest := make(map[int64][]int)
	var order []int64
	for i, sub := range subs {
		if _, ok := byTest[sub.TestID]; !ok {
			order = append(order, sub.TestID)
		}
		byTest[sub.TestID] = append(byTest[sub.TestID], i)
	}

	graded := make([]*grading.Result, len(subs))
	for _, testID := range order {
		def, err := s.opts.Tests.Load(ctx, testID)
		if err != nil {
			return nil, fmt.Errorf("load test %d: %w", testID, err)
		}
		idx := byTest[testID]
		batch := make([]grading.Submission, len(idx))
		for j, i := range idx {
			batch[j] = subs[i]
		}
		results, err := grading.GradeBatch(ctx, def, batch, s.opts.Grading)
		if err != nil {
			return nil, err
		}
		for j, i := range idx {
			graded[i] = results[j]
		}
	}

	attempts := make([]*Attempt, len(subs))
	for i, res := range graded {
		a, err := s.record(ctx, res)
		if err != nil {
			return attempts[:i], err
		}
		attempts[i] = a
	}
	return attempts, nil
}

func (s *Service) record(ctx context.Context, res *grading.Result) (*Attempt, error) {
	invalid := res.InvalidChoices
	for _, ic := range invalid {
		s.log.Warn("invalid choice graded as zero",
			"user_id", res.UserID, "test_id", res.TestID, "question_id", ic.QuestionID, "letters", ic.Letters.String())
	}

	stored, created, err := s.opts.Results.Save(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("save result of user %d for test %d: %w", res.UserID, res.TestID, err)
	}
	if created {
		s.log.Info("result recorded", "result_id", stored.ID, "user_id", res.UserID, "test_id", res.TestID, "score", res.Score)
	} else {
		s.log.Info("repeated attempt, existing result kept", "result_id", stored.ID, "user_id", res.UserID, "test_id", res.TestID)
	}
	return &Attempt{Result: stored, Created: created, InvalidChoices: invalid}, nil
}

// History is a user's recorded results with their aggregates.
type History struct {
	UserID   int64
	Results  []*store.StoredResult
	Summary  store.ScoreSummary
	Progress store.Progress
}

// Results returns a user's recorded results, newest first, with the mean
// score and the share of tests taken.
func (s *Service) Results(ctx context.Context, userID int64) (*History, error) {
	rs, err := s.opts.Results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list results of user %d: %w", userID, err)
	}
	sum, err := s.opts.Results.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.opts.Results.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &History{UserID: userID, Results: rs, Summary: sum, Progress: progress}, nil
}
