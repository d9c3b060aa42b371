package lists

import (
	"context"

	"github.com/matheuspiegas/movie-catalog/internal/store"
)

// Store captures the persistence needs for list workflows.
type Store interface {
	ListsByUser(ctx context.Context, userID string) ([]store.List, error)
	CreateList(ctx context.Context, userID string, input store.NewList) (store.List, error)
	UpdateList(ctx context.Context, listID, userID string, input store.ListUpdate) (store.List, error)
	DeleteList(ctx context.Context, listID, userID string) error
}

// Service coordinates list lifecycle operations.
type Service interface {
	List(ctx context.Context, userID string) ([]store.List, error)
	Create(ctx context.Context, userID string, input store.NewList) (store.List, error)
	Update(ctx context.Context, listID, userID string, input store.ListUpdate) (store.List, error)
	Delete(ctx context.Context, listID, userID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, userID string) ([]store.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListsByUser(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID string, input store.NewList) (store.List, error) {
	if err := ctx.Err(); err != nil {
		return store.List{}, err
	}
	return s.store.CreateList(ctx, userID, input)
}

func (s *service) Update(ctx context.Context, listID, userID string, input store.ListUpdate) (store.List, error) {
	if err := ctx.Err(); err != nil {
		return store.List{}, err
	}
	return s.store.UpdateList(ctx, listID, userID, input)
}

func (s *service) Delete(ctx context.Context, listID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteList(ctx, listID, userID)
}
