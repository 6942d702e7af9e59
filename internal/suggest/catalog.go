package suggest

import (
	"context"
	"fmt"
	"math/rand"

	"household-planner/internal/dish"
)

// CatalogSuggester picks a meal straight from the dish catalog: a random
// entree, plus a random side when one is available. Dishes already assigned
// to the day are skipped.
type CatalogSuggester struct {
	repo *dish.Repository
}

// NewCatalogSuggester creates a new CatalogSuggester.
func NewCatalogSuggester(repo *dish.Repository) *CatalogSuggester {
	return &CatalogSuggester{repo: repo}
}

// Suggest proposes one entree and, if possible, one side.
func (s *CatalogSuggester) Suggest(ctx context.Context, excludeDishIDs []string) (*Suggestion, error) {
	dishes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dish catalog: %w", err)
	}

	excluded := map[string]bool{}
	for _, id := range excludeDishIDs {
		excluded[id] = true
	}

	var entrees, sides []dish.Dish
	for _, d := range dishes {
		if excluded[d.ID] {
			continue
		}
		switch d.Type {
		case dish.TypeEntree:
			entrees = append(entrees, d)
		case dish.TypeSide:
			sides = append(sides, d)
		}
	}

	if len(entrees) == 0 {
		return nil, fmt.Errorf("no entrees available to suggest")
	}

	picked := []dish.Dish{entrees[rand.Intn(len(entrees))]}
	if len(sides) > 0 {
		picked = append(picked, sides[rand.Intn(len(sides))])
	}
	return &Suggestion{Dishes: picked}, nil
}
