package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrListNotFound signals the requested list does not exist.
	ErrListNotFound = errors.New("list not found")
	// ErrNotListOwner indicates the list exists but belongs to another user.
	ErrNotListOwner = errors.New("list does not belong to user")
	// ErrItemNotFound signals the item does not exist in the given list.
	ErrItemNotFound = errors.New("item not found in list")
	// ErrItemExists indicates the media is already a member of the list.
	ErrItemExists = errors.New("item already in list")
	// ErrInvalidList wraps list validation failures.
	ErrInvalidList = errors.New("invalid list")
	// ErrInvalidItem wraps list item validation failures.
	ErrInvalidItem = errors.New("invalid list item")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func toStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
