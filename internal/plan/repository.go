package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed Store for meal plans. The day sequence is
// stored as a single JSON column and always written back whole.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves all plans in creation order.
func (r *Repository) List(ctx context.Context) ([]MealPlan, error) {
	query := `SELECT id, name, start_date, number_of_days, days, created_at, updated_at
		FROM meal_plans ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []MealPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// Get retrieves a plan by its ID. Returns nil if the plan does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*MealPlan, error) {
	query := `SELECT id, name, start_date, number_of_days, days, created_at, updated_at
		FROM meal_plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Plan not found
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return p, nil
}

// Create inserts a new plan and returns it with its generated ID.
func (r *Repository) Create(ctx context.Context, fields CreateFields) (*MealPlan, error) {
	now := time.Now().UTC()
	p := &MealPlan{
		ID:           uuid.NewString(),
		Name:         fields.Name,
		StartDate:    fields.StartDate,
		NumberOfDays: fields.NumberOfDays,
		Days:         cloneDays(fields.Days),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	daysJSON, err := json.Marshal(p.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal day assignments: %w", err)
	}

	query := `INSERT INTO meal_plans (id, name, start_date, number_of_days, days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.StartDate, p.NumberOfDays, string(daysJSON),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return p, nil
}

// Update merges only the supplied fields into the stored plan and returns
// the result. Returns nil if the plan does not exist.
func (r *Repository) Update(ctx context.Context, id string, upd Update) (*MealPlan, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Days != nil {
		existing.Days = cloneDays(upd.Days)
	}
	existing.UpdatedAt = time.Now().UTC()

	daysJSON, err := json.Marshal(existing.Days)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal day assignments: %w", err)
	}

	query := `UPDATE meal_plans SET name = ?, days = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		existing.Name, string(daysJSON), existing.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update meal plan: %w", err)
	}
	return existing, nil
}

// Delete removes a plan. Returns whether a plan was found and removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*MealPlan, error) {
	var p MealPlan
	var daysJSON, createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.NumberOfDays, &daysJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(daysJSON), &p.Days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal day assignments: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}
