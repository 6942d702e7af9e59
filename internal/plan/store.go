package plan

import "context"

// CreateFields carries the fields for a new plan; the store assigns the ID
// and timestamps.
type CreateFields struct {
	Name         string
	StartDate    string
	NumberOfDays int
	Days         []DayAssignment
}

// Update carries a partial plan update. A nil field is left unchanged; a
// non-nil Days value replaces the entire day sequence.
type Update struct {
	Name *string
	Days []DayAssignment
}

// Store is the persistent source of truth for meal plans. Not-found is
// reported as a nil plan (or false), never as an error; errors mean the
// store itself failed.
type Store interface {
	List(ctx context.Context) ([]MealPlan, error)
	Get(ctx context.Context, id string) (*MealPlan, error)
	Create(ctx context.Context, fields CreateFields) (*MealPlan, error)
	Update(ctx context.Context, id string, upd Update) (*MealPlan, error)
	Delete(ctx context.Context, id string) (bool, error)
}
