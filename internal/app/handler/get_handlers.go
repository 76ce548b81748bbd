package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/app/service"
	"github.com/atarasenko/shortlink/internal/models"
	"github.com/atarasenko/shortlink/internal/storage"
)

type GetHandler struct {
	service service.URLServiceIface
	logger  *zap.Logger
}

func NewGet(s service.URLServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		logger:  l,
	}
}

// Redirect handles GET /{shortId}. The click counter is incremented and the
// target fetched in one atomic store call, so the increment is durable by the
// time the redirect is sent.
func (h *GetHandler) Redirect(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	shortID := chi.URLParam(req, "shortId")

	r, err := h.service.Visit(ctx, shortID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(res, http.StatusNotFound, errURLNotFound)
			return
		}

		h.logger.Error("redirect failed", zap.String("shortID", shortID), zap.Error(err))
		writeError(res, http.StatusInternalServerError, errServer)
		return
	}

	http.Redirect(res, req, r.OriginalURL, http.StatusFound)
}

// Stats handles GET /stats/{shortId}, a read-only lookup.
func (h *GetHandler) Stats(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	shortID := chi.URLParam(req, "shortId")

	r, err := h.service.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(res, http.StatusNotFound, errURLNotFound)
			return
		}

		h.logger.Error("stats lookup failed", zap.String("shortID", shortID), zap.Error(err))
		writeError(res, http.StatusInternalServerError, errServer)
		return
	}

	writeJSON(res, http.StatusOK, models.StatsResponse{
		ShortID:     r.ShortID,
		OriginalURL: r.OriginalURL,
		Clicks:      r.Clicks,
		CreatedAt:   r.CreatedAt,
	})
}

// Ping reports whether the backing store is reachable.
func (h *GetHandler) Ping(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.service.PingContext(ctx); err != nil {
		writeError(res, http.StatusInternalServerError, errServer)
		return
	}

	res.WriteHeader(http.StatusOK)
}
