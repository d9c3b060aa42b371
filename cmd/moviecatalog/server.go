package main

import (
	"net/http"

	"github.com/matheuspiegas/movie-catalog/internal/app/listitems"
	"github.com/matheuspiegas/movie-catalog/internal/app/lists"
	"github.com/matheuspiegas/movie-catalog/internal/auth"
	"github.com/matheuspiegas/movie-catalog/internal/httpapi"
	"github.com/matheuspiegas/movie-catalog/internal/middleware"
	"github.com/matheuspiegas/movie-catalog/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	listSvc := lists.New(dataStore)
	itemSvc := listitems.New(dataStore)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	handler := httpapi.New(listSvc, itemSvc, verifier).Routes()
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}
