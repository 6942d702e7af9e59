package plan

import (
	"context"
	"sync"
	"time"
)

// DefaultDays is the day count used when a plan is created without one.
const DefaultDays = 7

// Synchronizer keeps an in-memory ordered mirror of the plan store and
// provides write-through operations. The cache is authoritative for listing
// between writes; day mutations always re-read the plan from the store so
// they never act on stale day data.
type Synchronizer struct {
	store Store

	mu     sync.Mutex
	plans  []MealPlan
	loaded bool
}

// NewSynchronizer creates a Synchronizer over the given store. Call Load
// before serving reads.
func NewSynchronizer(store Store) *Synchronizer {
	return &Synchronizer{store: store}
}

// Load fetches all plans from the store into the cache. It runs once;
// subsequent calls are no-ops.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	plans, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	s.plans = plans
	s.loaded = true
	return nil
}

// Ready reports whether the initial load has completed.
func (s *Synchronizer) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Plans returns a copy of all cached plans in cache order.
func (s *Synchronizer) Plans() []MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]MealPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p.Clone())
	}
	return out
}

// GetByID looks up a plan in the cache only. Returns nil if not cached.
func (s *Synchronizer) GetByID(id string) *MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == id {
			p := s.plans[i].Clone()
			return &p
		}
	}
	return nil
}

// Create builds a new plan with `days` consecutive empty day assignments
// starting at startDate, writes it to the store, and appends it to the
// cache. A non-positive days falls back to DefaultDays; a zero startDate
// falls back to today.
func (s *Synchronizer) Create(ctx context.Context, days int, startDate time.Time, name string) (*MealPlan, error) {
	if days <= 0 {
		days = DefaultDays
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	created, err := s.store.Create(ctx, CreateFields{
		Name:         name,
		StartDate:    startDate.Format(DateLayout),
		NumberOfDays: days,
		Days:         NewDays(startDate, days),
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.plans = append(s.plans, created.Clone())
	s.mu.Unlock()

	p := created.Clone()
	return &p, nil
}

// Update merges the supplied fields into the stored plan. On success the
// matching cache entry is replaced in place, preserving cache order.
// Returns nil if no plan with the id exists.
func (s *Synchronizer) Update(ctx context.Context, id string, upd Update) (*MealPlan, error) {
	updated, err := s.store.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.replaceCached(*updated)
	p := updated.Clone()
	return &p, nil
}

// Delete removes the plan from the store and, if found, from the cache.
func (s *Synchronizer) Delete(ctx context.Context, id string) (bool, error) {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	s.mu.Lock()
	for i := range s.plans {
		if s.plans[i].ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return true, nil
}

// AssignDish appends dishID to the end of the matching day's dish list.
// The plan is read fresh from the store, the whole day sequence is written
// back, and the cache entry is refreshed. Returns false without side
// effects if the plan or the date is not found.
func (s *Synchronizer) AssignDish(ctx context.Context, planID, date, dishID string) (bool, error) {
	current, err := s.store.Get(ctx, planID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	idx := findDay(current.Days, date)
	if idx < 0 {
		return false, nil
	}

	days := cloneDays(current.Days)
	days[idx].DishIDs = append(days[idx].DishIDs, dishID)

	updated, err := s.store.Update(ctx, planID, Update{Days: days})
	if err != nil {
		return false, err
	}
	if updated == nil {
		return false, nil
	}

	s.replaceCached(*updated)
	return true, nil
}

// RemoveDish removes the first occurrence of dishID from the matching day,
// preserving the relative order of the rest. Returns false without side
// effects if the plan, the date, or the dish is not found.
func (s *Synchronizer) RemoveDish(ctx context.Context, planID, date, dishID string) (bool, error) {
	current, err := s.store.Get(ctx, planID)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	idx := findDay(current.Days, date)
	if idx < 0 {
		return false, nil
	}

	pos := -1
	for i, id := range current.Days[idx].DishIDs {
		if id == dishID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false, nil
	}

	days := cloneDays(current.Days)
	days[idx].DishIDs = append(days[idx].DishIDs[:pos], days[idx].DishIDs[pos+1:]...)

	updated, err := s.store.Update(ctx, planID, Update{Days: days})
	if err != nil {
		return false, err
	}
	if updated == nil {
		return false, nil
	}

	s.replaceCached(*updated)
	return true, nil
}

// replaceCached swaps the cache entry matching the plan's ID in place.
func (s *Synchronizer) replaceCached(p MealPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID == p.ID {
			s.plans[i] = p.Clone()
			return
		}
	}
}
