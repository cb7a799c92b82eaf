// Package session persists the logged-in user's credentials between page
// loads as an opaque string-keyed store, the way a browser profile would.
package session

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"feedclient/pkg/models"
)

// Store keys. Nothing else is ever persisted.
const (
	KeyAccessToken = "accessToken"
	KeyAPIKey      = "apiKey"
	KeyUser        = "user"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the session database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("select value from session where key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}

	return value, nil
}

// Set writes key to value, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec("insert or replace into session (key, value) values (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}

	return nil
}

// Clear removes every persisted key. Used on logout.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("delete from session"); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

// SaveLogin persists token, key and profile in one transaction, so a
// half-written session can never survive a failure mid-login.
func (s *Store) SaveLogin(profile models.Profile, accessToken, apiKey string) error {
	userJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		KeyAccessToken: accessToken,
		KeyAPIKey:      apiKey,
		KeyUser:        string(userJSON),
	} {
		if _, err := tx.Exec("insert or replace into session (key, value) values (?, ?)", key, value); err != nil {
			return fmt.Errorf("writing key %q: %w", key, err)
		}
	}

	return tx.Commit()
}

// Credentials reads the persisted token and API key. Either field may be
// empty; the caller decides whether that blocks the page.
func (s *Store) Credentials() (models.Credentials, error) {
	token, err := s.Get(KeyAccessToken)
	if err != nil {
		return models.Credentials{}, err
	}
	key, err := s.Get(KeyAPIKey)
	if err != nil {
		return models.Credentials{}, err
	}

	return models.Credentials{AccessToken: token, APIKey: key}, nil
}

// Profile reads the persisted user profile. A missing profile yields the
// zero value, not an error.
func (s *Store) Profile() (models.Profile, error) {
	raw, err := s.Get(KeyUser)
	if err != nil || raw == "" {
		return models.Profile{}, err
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.Profile{}, fmt.Errorf("unmarshaling profile: %w", err)
	}

	return p, nil
}
