package dish

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed store for the dish catalog.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new dish and returns it with its generated ID.
func (r *Repository) Create(ctx context.Context, name string, dishType Type) (*Dish, error) {
	if !dishType.Valid() {
		return nil, fmt.Errorf("invalid dish type %q", dishType)
	}

	now := time.Now().UTC()
	d := &Dish{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      dishType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO dishes (id, name, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, string(d.Type),
		d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert dish: %w", err)
	}
	return d, nil
}

// Get retrieves a dish by its ID. Returns nil if the dish does not exist.
func (r *Repository) Get(ctx context.Context, id string) (*Dish, error) {
	query := `SELECT id, name, type, created_at, updated_at FROM dishes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	d, err := scanDish(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Dish not found
		}
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	return d, nil
}

// List retrieves all dishes ordered by name.
func (r *Repository) List(ctx context.Context) ([]Dish, error) {
	query := `SELECT id, name, type, created_at, updated_at FROM dishes ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	var dishes []Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dishes = append(dishes, *d)
	}
	return dishes, rows.Err()
}

// Update applies a partial update and returns the updated dish.
// Returns nil if the dish does not exist.
func (r *Repository) Update(ctx context.Context, id string, upd Update) (*Dish, error) {
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
	if upd.Type != nil {
		if !upd.Type.Valid() {
			return nil, fmt.Errorf("invalid dish type %q", *upd.Type)
		}
		existing.Type = *upd.Type
	}
	existing.UpdatedAt = time.Now().UTC()

	query := `UPDATE dishes SET name = ?, type = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		existing.Name, string(existing.Type),
		existing.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}
	return existing, nil
}

// Delete removes a dish. Returns whether a dish was found and removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete dish: %w", err)
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

func scanDish(row rowScanner) (*Dish, error) {
	var d Dish
	var typeStr, createdAtStr, updatedAtStr string

	if err := row.Scan(&d.ID, &d.Name, &typeStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	d.Type = Type(typeStr)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt
	return &d, nil
}
