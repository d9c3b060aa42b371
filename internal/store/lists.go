package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxListNameLen        = 255
	maxListDescriptionLen = 1000
)

// List is a named, user-owned collection of media references.
type List struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewList captures the caller-supplied fields for list creation.
type NewList struct {
	Name        string
	Description *string
}

// ListUpdate carries the fields of a partial list update. A nil field is
// left untouched.
type ListUpdate struct {
	Name        *string
	Description *string
}

// ListsByUser returns all lists owned by the user, newest first.
func (s *Store) ListsByUser(ctx context.Context, userID string) ([]List, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM lists
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	lists := make([]List, 0)
	for rows.Next() {
		var list List
		var description sql.NullString
		if err := rows.Scan(&list.ID, &list.Name, &description, &list.UserID,
			&list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		list.Description = toStringPtr(description)
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}
	return lists, nil
}

// CreateList persists a new empty list owned by the user.
func (s *Store) CreateList(ctx context.Context, userID string, input NewList) (List, error) {
	name := strings.TrimSpace(input.Name)
	description := trimPtr(input.Description)
	if err := validateListFields(name, description); err != nil {
		return List{}, err
	}

	now := time.Now().UTC()
	list := List{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, name, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		list.ID, list.Name, nullIfNil(list.Description), list.UserID, now); err != nil {
		return List{}, fmt.Errorf("insert list: %w", err)
	}

	return list, nil
}

// UpdateList applies a partial update to a list the user owns. At least one
// of name/description must be supplied.
func (s *Store) UpdateList(ctx context.Context, listID, userID string, input ListUpdate) (List, error) {
	if input.Name == nil && input.Description == nil {
		return List{}, fmt.Errorf("%w: at least one of name or description is required", ErrInvalidList)
	}

	list, err := s.ownedList(ctx, listID, userID)
	if err != nil {
		return List{}, err
	}

	if input.Name != nil {
		list.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		list.Description = trimPtr(input.Description)
	}
	if err := validateListFields(list.Name, list.Description); err != nil {
		return List{}, err
	}

	list.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE lists
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4`,
		list.Name, nullIfNil(list.Description), list.UpdatedAt, list.ID)
	if err != nil {
		return List{}, fmt.Errorf("update list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return List{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return List{}, ErrListNotFound
	}

	return list, nil
}

// DeleteList removes a list the user owns. The list_items foreign key
// cascades, so the list and its items disappear in one statement.
func (s *Store) DeleteList(ctx context.Context, listID, userID string) error {
	if _, err := s.ownedList(ctx, listID, userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, listID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrListNotFound
	}
	return nil
}

// ownedList fetches a list and asserts the user owns it. Every operation on
// a list or its items goes through this check; ownership is never cached
// across calls.
func (s *Store) ownedList(ctx context.Context, listID, userID string) (List, error) {
	var list List
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, user_id, created_at, updated_at
		FROM lists
		WHERE id = $1`, listID).Scan(&list.ID, &list.Name, &description,
		&list.UserID, &list.CreatedAt, &list.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, ErrListNotFound
	}
	if err != nil {
		return List{}, fmt.Errorf("get list: %w", err)
	}
	list.Description = toStringPtr(description)

	if list.UserID != userID {
		return List{}, ErrNotListOwner
	}
	return list, nil
}

func validateListFields(name string, description *string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidList)
	}
	if len(name) > maxListNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidList, maxListNameLen)
	}
	if description != nil && len(*description) > maxListDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidList, maxListDescriptionLen)
	}
	return nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
