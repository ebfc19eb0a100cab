package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, handle, password_hash,
	display_name, profile_visibility`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt  string
		updatedAt  string
		visibility string
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Handle,
		&u.PasswordHash,
		&u.DisplayName,
		&visibility,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	u.ProfileVisibility = domain.Visibility(visibility)

	return &u, nil
}

// CreateUser inserts a new user into the database.
// Returns store.ErrAlreadyExists if the user ID or handle already exists.
// Handle uniqueness is case-insensitive via the handle_lower column.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	handleLower := strings.ToLower(strings.TrimSpace(user.Handle))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, handle, handle_lower,
			password_hash, display_name, profile_visibility
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Handle,
		handleLower,
		user.PasswordHash,
		user.DisplayName,
		string(user.ProfileVisibility),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByHandle retrieves a user by handle, case-insensitively.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*domain.User, error) {
	lower := strings.ToLower(strings.TrimSpace(handle))
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE handle_lower = ?`, lower)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser performs a full row update on an existing user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	handleLower := strings.ToLower(strings.TrimSpace(user.Handle))

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			created_at = ?,
			updated_at = ?,
			handle = ?,
			handle_lower = ?,
			password_hash = ?,
			display_name = ?,
			profile_visibility = ?
		WHERE id = ?`,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Handle,
		handleLower,
		user.PasswordHash,
		user.DisplayName,
		string(user.ProfileVisibility),
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
