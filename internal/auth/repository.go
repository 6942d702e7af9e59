package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists users, one-time login tokens, and sessions.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByEmail returns nil if no user with the email exists.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, name, household_name, created_at, updated_at FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetUser returns nil if no user with the id exists.
func (r *Repository) GetUser(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, email, name, household_name, created_at, updated_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// CreateUser inserts a new user record for the email.
func (r *Repository) CreateUser(ctx context.Context, email string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO users (id, email, name, household_name, created_at, updated_at)
		VALUES (?, ?, '', '', ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// UpdateUser applies a partial profile update. Returns nil if the user does
// not exist.
func (r *Repository) UpdateUser(ctx context.Context, id string, upd ProfileUpdate) (*User, error) {
	existing, err := r.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.HouseholdName != nil {
		existing.HouseholdName = *upd.HouseholdName
	}
	existing.UpdatedAt = time.Now().UTC()

	query := `UPDATE users SET name = ?, household_name = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		existing.Name, existing.HouseholdName, existing.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, nil
}

// SaveLoginToken records a pending one-time login token.
func (r *Repository) SaveLoginToken(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	query := `INSERT INTO login_tokens (jti, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		jti, userID, expiresAt.UTC().Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save login token: %w", err)
	}
	return nil
}

// ConsumeLoginToken deletes the token if it is still pending and unexpired.
// Returns whether the token was valid; a second consume of the same jti
// reports false.
func (r *Repository) ConsumeLoginToken(ctx context.Context, jti string) (bool, error) {
	query := `DELETE FROM login_tokens WHERE jti = ? AND expires_at > ?`
	result, err := r.db.ExecContext(ctx, query, jti, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to consume login token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// CreateSession opens a session for the user.
func (r *Repository) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.ExpiresAt.Format(time.RFC3339), s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return s, nil
}

// GetSession returns nil if the session does not exist or has expired.
func (r *Repository) GetSession(ctx context.Context, id string) (*Session, error) {
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ? AND expires_at > ?`
	row := r.db.QueryRowContext(ctx, query, id, time.Now().UTC().Format(time.RFC3339))

	var s Session
	var expiresAtStr, createdAtStr string
	err := row.Scan(&s.ID, &s.UserID, &expiresAtStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Session not found or expired
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	s.ExpiresAt, err = time.Parse(time.RFC3339, expiresAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CleanupExpired removes expired sessions and login tokens.
func (r *Repository) CleanupExpired(ctx context.Context) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM login_tokens WHERE expires_at <= ?`, now); err != nil {
		return fmt.Errorf("failed to cleanup login tokens: %w", err)
	}
	return nil
}

func (r *Repository) scanUser(row *sql.Row) (*User, error) {
	var u User
	var createdAtStr, updatedAtStr string

	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.HouseholdName, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &u, nil
}
