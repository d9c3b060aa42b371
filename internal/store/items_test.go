package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

const membershipQuery = `
		SELECT EXISTS (
			SELECT 1 FROM list_items
			WHERE list_id = $1 AND movie_id = $2 AND media_type = $3
		)`

const insertItemQuery = `
		INSERT INTO list_items (id, list_id, movie_id, movie_title, movie_poster_path,
			movie_release_date, movie_vote_average, media_type, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func expectOwnedList(mock sqlmock.Sqlmock, listID, ownerID string) {
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(ownedListQuery)).
		WithArgs(listID).
		WillReturnRows(sqlmock.NewRows(listColumns()).
			AddRow(listID, "Watchlist", nil, ownerID, now, now))
}

func TestValidateNewItem(t *testing.T) {
	tests := []struct {
		name    string
		input   NewListItem
		wantErr bool
	}{
		{
			name:  "valid movie",
			input: NewListItem{MovieID: 550, MovieTitle: "Fight Club", MediaType: MediaTypeMovie},
		},
		{
			name:  "valid tv",
			input: NewListItem{MovieID: 1399, MovieTitle: "Game of Thrones", MediaType: MediaTypeTV},
		},
		{
			name:    "zero movie id",
			input:   NewListItem{MovieID: 0, MovieTitle: "Fight Club", MediaType: MediaTypeMovie},
			wantErr: true,
		},
		{
			name:    "blank title",
			input:   NewListItem{MovieID: 550, MovieTitle: "   ", MediaType: MediaTypeMovie},
			wantErr: true,
		},
		{
			name:    "unknown media type",
			input:   NewListItem{MovieID: 550, MovieTitle: "Fight Club", MediaType: "podcast"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := validateNewItem(&tc.input)
			if tc.wantErr && !errors.Is(err, ErrInvalidItem) {
				t.Fatalf("expected ErrInvalidItem, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestAddItemSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	mock.ExpectQuery(regexp.QuoteMeta(membershipQuery)).
		WithArgs("list-1", 550, MediaTypeMovie).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(regexp.QuoteMeta(insertItemQuery)).
		WithArgs(sqlmock.AnyArg(), "list-1", 550, "Fight Club", "/poster.jpg", nil, nil, MediaTypeMovie, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := s.AddItem(context.Background(), "list-1", "user-a", NewListItem{
		MovieID:         550,
		MovieTitle:      " Fight Club ",
		MediaType:       MediaTypeMovie,
		MoviePosterPath: ptr("/poster.jpg"),
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	if got.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if got.MovieTitle != "Fight Club" {
		t.Fatalf("expected trimmed title, got %q", got.MovieTitle)
	}
	if got.ListID != "list-1" {
		t.Fatalf("unexpected list id %q", got.ListID)
	}
	if got.AddedAt.IsZero() {
		t.Fatal("expected added_at to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItemDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	mock.ExpectQuery(regexp.QuoteMeta(membershipQuery)).
		WithArgs("list-1", 550, MediaTypeMovie).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err = s.AddItem(context.Background(), "list-1", "user-a", NewListItem{
		MovieID:    550,
		MovieTitle: "Fight Club",
		MediaType:  MediaTypeMovie,
	})
	if !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItemUniqueViolationBackstop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	// The pre-check misses a concurrent insert; the unique constraint is the
	// actual guarantee.
	mock.ExpectQuery(regexp.QuoteMeta(membershipQuery)).
		WithArgs("list-1", 550, MediaTypeMovie).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectExec(regexp.QuoteMeta(insertItemQuery)).
		WithArgs(sqlmock.AnyArg(), "list-1", 550, "Fight Club", nil, nil, nil, MediaTypeMovie, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "list_items_membership_key"})

	_, err = s.AddItem(context.Background(), "list-1", "user-a", NewListItem{
		MovieID:    550,
		MovieTitle: "Fight Club",
		MediaType:  MediaTypeMovie,
	})
	if !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddItemWrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	_, err = s.AddItem(context.Background(), "list-1", "user-b", NewListItem{
		MovieID:    550,
		MovieTitle: "Fight Club",
		MediaType:  MediaTypeMovie,
	})
	if !errors.Is(err, ErrNotListOwner) {
		t.Fatalf("expected ErrNotListOwner, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestItemsByList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now().UTC()

	expectOwnedList(mock, "list-1", "user-a")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, list_id, movie_id, movie_title, movie_poster_path,
			movie_release_date, movie_vote_average, media_type, added_at
		FROM list_items
		WHERE list_id = $1
		ORDER BY added_at DESC, id DESC`)).
		WithArgs("list-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "list_id", "movie_id", "movie_title", "movie_poster_path",
			"movie_release_date", "movie_vote_average", "media_type", "added_at",
		}).
			AddRow("item-2", "list-1", 1399, "Game of Thrones", nil, "2011-04-17", "8.4", MediaTypeTV, now).
			AddRow("item-1", "list-1", 550, "Fight Club", "/poster.jpg", nil, nil, MediaTypeMovie, now.Add(-time.Minute)))

	items, err := s.ItemsByList(context.Background(), "list-1", "user-a")
	if err != nil {
		t.Fatalf("ItemsByList error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "item-2" || items[1].ID != "item-1" {
		t.Fatalf("unexpected order: %#v", items)
	}
	if items[0].MoviePosterPath != nil {
		t.Fatalf("expected nil poster path, got %q", *items[0].MoviePosterPath)
	}
	if items[1].MoviePosterPath == nil || *items[1].MoviePosterPath != "/poster.jpg" {
		t.Fatalf("unexpected poster path: %#v", items[1].MoviePosterPath)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveItemNotInList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	// item-9 exists but belongs to another list; the scoped delete touches
	// nothing.
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM list_items
		WHERE id = $1 AND list_id = $2`)).
		WithArgs("item-9", "list-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveItem(context.Background(), "list-1", "item-9", "user-a"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveItemSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	expectOwnedList(mock, "list-1", "user-a")

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM list_items
		WHERE id = $1 AND list_id = $2`)).
		WithArgs("item-1", "list-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.RemoveItem(context.Background(), "list-1", "item-1", "user-a"); err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
