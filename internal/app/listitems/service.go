package listitems

import (
	"context"

	"github.com/matheuspiegas/movie-catalog/internal/store"
)

// Store captures the persistence needs for list membership workflows.
type Store interface {
	ItemsByList(ctx context.Context, listID, userID string) ([]store.ListItem, error)
	AddItem(ctx context.Context, listID, userID string, input store.NewListItem) (store.ListItem, error)
	RemoveItem(ctx context.Context, listID, itemID, userID string) error
}

// Service coordinates membership of catalog references within a list.
type Service interface {
	List(ctx context.Context, listID, userID string) ([]store.ListItem, error)
	Add(ctx context.Context, listID, userID string, input store.NewListItem) (store.ListItem, error)
	Remove(ctx context.Context, listID, itemID, userID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, listID, userID string) ([]store.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ItemsByList(ctx, listID, userID)
}

func (s *service) Add(ctx context.Context, listID, userID string, input store.NewListItem) (store.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return store.ListItem{}, err
	}
	return s.store.AddItem(ctx, listID, userID, input)
}

func (s *service) Remove(ctx context.Context, listID, itemID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveItem(ctx, listID, itemID, userID)
}
