package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media types recognised by the external catalog.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

const maxMovieTitleLen = 500

// ListItem is one media reference attached to a list, carrying denormalized
// display metadata from the external catalog.
type ListItem struct {
	ID               string    `json:"id"`
	ListID           string    `json:"listId"`
	MovieID          int       `json:"movieId"`
	MovieTitle       string    `json:"movieTitle"`
	MoviePosterPath  *string   `json:"moviePosterPath"`
	MovieReleaseDate *string   `json:"movieReleaseDate"`
	MovieVoteAverage *string   `json:"movieVoteAverage"`
	MediaType        string    `json:"mediaType"`
	AddedAt          time.Time `json:"addedAt"`
}

// NewListItem captures the caller-supplied fields for adding an item.
type NewListItem struct {
	MovieID          int
	MovieTitle       string
	MediaType        string
	MoviePosterPath  *string
	MovieReleaseDate *string
	MovieVoteAverage *string
}

// ItemsByList returns the items of a list the user owns, newest first.
func (s *Store) ItemsByList(ctx context.Context, listID, userID string) ([]ListItem, error) {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, list_id, movie_id, movie_title, movie_poster_path,
			movie_release_date, movie_vote_average, media_type, added_at
		FROM list_items
		WHERE list_id = $1
		ORDER BY added_at DESC, id DESC`, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// AddItem attaches a media reference to a list the user owns. The same
// catalog id may appear once per media type; the unique index on
// (list_id, movie_id, media_type) backs the membership check against
// concurrent inserts.
func (s *Store) AddItem(ctx context.Context, listID, userID string, input NewListItem) (ListItem, error) {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return ListItem{}, err
	}

	if err := validateNewItem(&input); err != nil {
		return ListItem{}, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM list_items
			WHERE list_id = $1 AND movie_id = $2 AND media_type = $3
		)`, listID, input.MovieID, input.MediaType).Scan(&exists)
	if err != nil {
		return ListItem{}, fmt.Errorf("check membership: %w", err)
	}
	if exists {
		return ListItem{}, ErrItemExists
	}

	item := ListItem{
		ID:               uuid.NewString(),
		ListID:           listID,
		MovieID:          input.MovieID,
		MovieTitle:       input.MovieTitle,
		MoviePosterPath:  input.MoviePosterPath,
		MovieReleaseDate: input.MovieReleaseDate,
		MovieVoteAverage: input.MovieVoteAverage,
		MediaType:        input.MediaType,
		AddedAt:          time.Now().UTC(),
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO list_items (id, list_id, movie_id, movie_title, movie_poster_path,
			movie_release_date, movie_vote_average, media_type, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.ListID, item.MovieID, item.MovieTitle,
		nullIfNil(item.MoviePosterPath), nullIfNil(item.MovieReleaseDate),
		nullIfNil(item.MovieVoteAverage), item.MediaType, item.AddedAt); err != nil {
		if isUniqueViolation(err) {
			return ListItem{}, ErrItemExists
		}
		return ListItem{}, fmt.Errorf("insert item: %w", err)
	}

	return item, nil
}

// RemoveItem detaches an item from a list the user owns. The lookup is
// scoped to the list, so an item id belonging to another list is not found.
func (s *Store) RemoveItem(ctx context.Context, listID, itemID, userID string) error {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM list_items
		WHERE id = $1 AND list_id = $2`, itemID, listID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func scanItem(rows *sql.Rows) (ListItem, error) {
	var item ListItem
	var posterPath, releaseDate, voteAverage sql.NullString
	if err := rows.Scan(&item.ID, &item.ListID, &item.MovieID, &item.MovieTitle,
		&posterPath, &releaseDate, &voteAverage, &item.MediaType, &item.AddedAt); err != nil {
		return ListItem{}, fmt.Errorf("scan item: %w", err)
	}
	item.MoviePosterPath = toStringPtr(posterPath)
	item.MovieReleaseDate = toStringPtr(releaseDate)
	item.MovieVoteAverage = toStringPtr(voteAverage)
	return item, nil
}

func validateNewItem(input *NewListItem) error {
	if input.MovieID <= 0 {
		return fmt.Errorf("%w: movieId must be a positive integer", ErrInvalidItem)
	}
	input.MovieTitle = strings.TrimSpace(input.MovieTitle)
	if input.MovieTitle == "" {
		return fmt.Errorf("%w: movieTitle is required", ErrInvalidItem)
	}
	if len(input.MovieTitle) > maxMovieTitleLen {
		return fmt.Errorf("%w: movieTitle exceeds %d characters", ErrInvalidItem, maxMovieTitleLen)
	}
	if input.MediaType != MediaTypeMovie && input.MediaType != MediaTypeTV {
		return fmt.Errorf("%w: mediaType must be %q or %q", ErrInvalidItem, MediaTypeMovie, MediaTypeTV)
	}
	return nil
}
