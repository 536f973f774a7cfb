package inference

import (
	"context"

	"llmapi/internal/runner"
)

// ListAvailable returns the names of installed models. Any runner failure is
// logged and yields an empty list.
func (s *Service) ListAvailable(ctx context.Context) []string {
	ds, err := s.runner.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching models from runner")
		return []string{}
	}
	return runner.Names(ds)
}

// ListCategorized buckets installed models by Category. Every category is
// always present; on runner failure all buckets are empty.
func (s *Service) ListCategorized(ctx context.Context) map[Category][]string {
	out := emptyCategories()
	ds, err := s.runner.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching categorized models from runner")
		return out
	}
	for _, d := range ds {
		c := Categorize(d)
		out[c] = append(out[c], d.Name)
	}
	return out
}

// Inventory is a view of installed models taken from a single runner listing.
type Inventory struct {
	Models      []string
	Categorized map[Category][]string
	Current     string
}

// Inventory lists installed models once and returns names, buckets and the
// active model. Runner failures degrade to empty lists.
func (s *Service) Inventory(ctx context.Context) Inventory {
	inv := Inventory{Models: []string{}, Categorized: emptyCategories(), Current: s.Current()}
	ds, err := s.runner.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching models from runner")
		return inv
	}
	inv.Models = runner.Names(ds)
	for _, d := range ds {
		c := Categorize(d)
		inv.Categorized[c] = append(inv.Categorized[c], d.Name)
	}
	return inv
}
