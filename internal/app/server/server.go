package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/app/handler"
	"github.com/atarasenko/shortlink/internal/app/service"
	"github.com/atarasenko/shortlink/internal/middleware"
)

// Init wires the chi router: shorten, redirect, stats and the storage health
// check, with CORS, request logging and gzip handling applied to every route.
// All fallback responses carry JSON error bodies.
func Init(baseURL string, logger *zap.Logger, urlService service.URLServiceIface) *chi.Mux {
	post := handler.NewPost(baseURL, urlService, logger)
	get := handler.NewGet(urlService, logger)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGZIPPost)
	r.Use(middleware.WithGZIPGet)

	r.Post("/shorten", post.Shorten)
	r.Get("/ping", get.Ping)
	r.Get("/stats/{shortId}", get.Stats)
	r.Get("/{shortId}", get.Redirect)

	r.Get("/", handler.MissingShortID)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	r.NotFound(handler.NotFound)

	return r
}
