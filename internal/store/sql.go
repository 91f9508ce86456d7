package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/weather"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	profile       TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
)`

// userRow is the persisted form of account.User. Everything a user owns is
// kept in the profile JSON document.
type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Profile      string    `db:"profile"`
	CreatedAt    time.Time `db:"created_at"`
}

type profileDoc struct {
	Favorites        []account.Favorite       `json:"favorites"`
	Trips            []account.Trip           `json:"trips"`
	RecentSearches   []account.RecentSearch   `json:"recentSearches"`
	AlertPreferences weather.AlertPreferences `json:"alertPreferences"`
}

// SQLStore persists users through sqlx. It works with the sqlite3 and
// postgres drivers.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQLStore connects with driver ("sqlite3" or "postgres") and ensures
// the schema exists.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite3" {
		// One connection keeps ":memory:" databases shared and avoids
		// SQLITE_BUSY on concurrent writes.
		db.SetMaxOpenConns(1)
	}
	s := &SQLStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) CreateUser(ctx context.Context, u account.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`INSERT INTO users (id, email, password_hash, name, profile, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, q, row.ID, row.Email, row.PasswordHash, row.Name, row.Profile, row.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (account.User, error) {
	return s.getBy(ctx, "id", id)
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	return s.getBy(ctx, "email", email)
}

func (s *SQLStore) getBy(ctx context.Context, column, value string) (account.User, error) {
	var row userRow
	q := s.db.Rebind(`SELECT id, email, password_hash, name, profile, created_at FROM users WHERE ` + column + ` = ?`)
	if err := s.db.GetContext(ctx, &row, q, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.User{}, account.ErrNotFound
		}
		return account.User{}, fmt.Errorf("loading user: %w", err)
	}
	return fromRow(row)
}

// UpdateUser saves the name, password hash and profile of u.
func (s *SQLStore) UpdateUser(ctx context.Context, u account.User) error {
	row, err := toRow(u)
	if err != nil {
		return err
	}
	q := s.db.Rebind(`UPDATE users SET name = ?, password_hash = ?, profile = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, q, row.Name, row.PasswordHash, row.Profile, row.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]account.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, email, password_hash, name, profile, created_at FROM users ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	users := make([]account.User, 0, len(rows))
	for _, r := range rows {
		u, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func toRow(u account.User) (userRow, error) {
	profile, err := json.Marshal(profileDoc{
		Favorites:        u.Favorites,
		Trips:            u.Trips,
		RecentSearches:   u.RecentSearches,
		AlertPreferences: u.AlertPreferences,
	})
	if err != nil {
		return userRow{}, fmt.Errorf("encoding profile: %w", err)
	}
	return userRow{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Profile:      string(profile),
		CreatedAt:    u.CreatedAt.UTC(),
	}, nil
}

func fromRow(r userRow) (account.User, error) {
	var doc profileDoc
	if err := json.Unmarshal([]byte(r.Profile), &doc); err != nil {
		return account.User{}, fmt.Errorf("decoding profile of %s: %w", r.ID, err)
	}
	return account.User{
		ID:               r.ID,
		Email:            r.Email,
		PasswordHash:     r.PasswordHash,
		Name:             r.Name,
		Favorites:        doc.Favorites,
		Trips:            doc.Trips,
		RecentSearches:   doc.RecentSearches,
		AlertPreferences: doc.AlertPreferences,
		CreatedAt:        r.CreatedAt.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

var _ account.Store = (*SQLStore)(nil)
