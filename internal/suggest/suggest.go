package suggest

import (
	"context"

	"household-planner/internal/dish"
)

// Suggestion is a proposed set of dishes for one day.
type Suggestion struct {
	Dishes []dish.Dish `json:"dishes"`
	Note   string      `json:"note,omitempty"`
}

// Suggester proposes dishes for a day, excluding the dish ids already
// assigned to it.
type Suggester interface {
	Suggest(ctx context.Context, excludeDishIDs []string) (*Suggestion, error)
}
