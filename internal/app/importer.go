package app

import (
	"context"
	"fmt"
	"io"

	"github.com/abhisek/giasu/internal/catalog"
	"github.com/abhisek/giasu/internal/grading"
	"github.com/abhisek/giasu/internal/matching"
)

// ImportTests decodes a tests document and stores every definition. The
// returned definitions carry the assigned IDs.
func (s *Service) ImportTests(ctx context.Context, r io.Reader) ([]grading.Definition, error) {
	defs, err := catalog.DecodeTests(r)
	if err != nil {
		return nil, err
	}
	saved := make([]grading.Definition, 0, len(defs))
	for _, def := range defs {
		d, err := s.opts.Tests.Save(ctx, def)
		if err != nil {
			return saved, fmt.Errorf("save test %q: %w", def.Test.Title, err)
		}
		s.log.Info("test imported", "test_id", d.Test.ID, "title", d.Test.Title, "questions", len(d.Questions))
		saved = append(saved, d)
	}
	return saved, nil
}

// ImportCatalog decodes a university catalog document and upserts it.
func (s *Service) ImportCatalog(ctx context.Context, r io.Reader) (matching.Catalog, error) {
	c, err := catalog.DecodeCatalog(r)
	if err != nil {
		return matching.Catalog{}, err
	}
	if err := s.opts.Catalog.Save(ctx, c); err != nil {
		return matching.Catalog{}, fmt.Errorf("save catalog: %w", err)
	}
	s.log.Info("catalog imported", "universities", len(c.Universities), "scores", len(c.Scores))
	return c, nil
}

// ImportPreferences decodes a preferences document and records each entry
// as the user's latest preference.
func (s *Service) ImportPreferences(ctx context.Context, r io.Reader) ([]matching.Preference, error) {
	prefs, err := catalog.DecodePreferences(r)
	if err != nil {
		return nil, err
	}
	for _, p := range prefs {
		if err := s.opts.Preferences.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("save preference of user %d: %w", p.UserID, err)
		}
		s.log.Info("preference imported", "user_id", p.UserID, "expected_score", p.ExpectedScore)
	}
	return prefs, nil
}
