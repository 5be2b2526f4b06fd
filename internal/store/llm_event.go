package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var llmEventSelectColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		seqNum, err := r.seq.Next(ctx, tx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		ins := builder.Insert(llmEventsTable.Name).
			Columns(llmEventSelectColumns[1:]...).
			Values(seqNum, time.Now().UTC(), data.Provider, data.Model, data.Purpose, data.InputTokens,
				data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody,
				data.ResponseBody)
		if _, err := execQuery(ctx, tx, ins); err != nil {
			return fmt.Errorf("save LLM request event: %w", err)
		}
		return nil
	})
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}

	sel := builder.Select(llmEventSelectColumns...).
		From(builder.Table(llmEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	sel := builder.Select(llmEventSelectColumns...).
		From(builder.Table(llmEventsTable.Name)).
		Where(entsql.EQ("id", id))
	e, err := scanLLMEvent(selectRow(ctx, r.db, sel))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return e, nil
}

func scanLLMEvent(s scanner) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := s.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
		&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	sel := builder.Select(
		"purpose",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(input_tokens), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(output_tokens), 0)", "output_tokens"),
		entsql.As("CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)", "avg_latency_ms"),
	).
		From(builder.Table(llmEventsTable.Name)).
		GroupBy("purpose").
		OrderBy("purpose")
	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var usage []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	sel := builder.Select(
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(input_tokens), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(output_tokens), 0)", "output_tokens"),
	).
		From(builder.Table(llmEventsTable.Name)).
		Where(entsql.EQ("success", true)).
		GroupBy("model").
		OrderBy("model")
	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
