package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matheuspiegas/movie-catalog/internal/store"
)

type addItemRequest struct {
	MovieID          int     `json:"movieId"`
	MovieTitle       string  `json:"movieTitle"`
	MediaType        string  `json:"mediaType"`
	MoviePosterPath  *string `json:"moviePosterPath"`
	MovieReleaseDate *string `json:"movieReleaseDate"`
	MovieVoteAverage *string `json:"movieVoteAverage"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	listID := mux.Vars(r)["listId"]

	items, err := s.items.List(r.Context(), listID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Items []store.ListItem `json:"items"`
	}{Items: items})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	listID := mux.Vars(r)["listId"]

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	item, err := s.items.Add(r.Context(), listID, userID, store.NewListItem{
		MovieID:          req.MovieID,
		MovieTitle:       req.MovieTitle,
		MediaType:        req.MediaType,
		MoviePosterPath:  req.MoviePosterPath,
		MovieReleaseDate: req.MovieReleaseDate,
		MovieVoteAverage: req.MovieVoteAverage,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Item store.ListItem `json:"item"`
	}{Item: item})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := s.items.Remove(r.Context(), vars["listId"], vars["itemId"], userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
