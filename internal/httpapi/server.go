package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/matheuspiegas/movie-catalog/internal/auth"
	"github.com/matheuspiegas/movie-catalog/internal/store"
)

// ListService coordinates list lifecycle operations.
type ListService interface {
	List(ctx context.Context, userID string) ([]store.List, error)
	Create(ctx context.Context, userID string, input store.NewList) (store.List, error)
	Update(ctx context.Context, listID, userID string, input store.ListUpdate) (store.List, error)
	Delete(ctx context.Context, listID, userID string) error
}

// ListItemService coordinates membership of catalog references within lists.
type ListItemService interface {
	List(ctx context.Context, listID, userID string) ([]store.ListItem, error)
	Add(ctx context.Context, listID, userID string, input store.NewListItem) (store.ListItem, error)
	Remove(ctx context.Context, listID, itemID, userID string) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	lists    ListService
	items    ListItemService
	verifier *auth.Verifier
}

// New configures a Server with the given services.
func New(lists ListService, items ListItemService, verifier *auth.Verifier) *Server {
	return &Server{
		lists:    lists,
		items:    items,
		verifier: verifier,
	}
}

// Routes exposes the HTTP handlers for list and item management.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware(s.verifier))

	api.HandleFunc("/lists", s.handleListLists).Methods(http.MethodGet)
	api.HandleFunc("/lists", s.handleCreateList).Methods(http.MethodPost)
	api.HandleFunc("/lists/{listId}", s.handleUpdateList).Methods(http.MethodPut)
	api.HandleFunc("/lists/{listId}", s.handleDeleteList).Methods(http.MethodDelete)

	api.HandleFunc("/lists/{listId}/items", s.handleListItems).Methods(http.MethodGet)
	api.HandleFunc("/lists/{listId}/items", s.handleAddItem).Methods(http.MethodPost)
	api.HandleFunc("/lists/{listId}/items/{itemId}", s.handleRemoveItem).Methods(http.MethodDelete)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

// requireUser pulls the authenticated user id placed by the auth middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing or invalid bearer token"})
		return "", false
	}
	return userID, true
}

// writeServiceError maps a service error onto its HTTP status. Unknown
// errors surface as a generic 500 with the cause logged, never leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidList), errors.Is(err, store.ErrInvalidItem):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, store.ErrNotListOwner):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrListNotFound), errors.Is(err, store.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrItemExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
