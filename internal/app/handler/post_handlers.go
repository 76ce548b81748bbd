package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/app/service"
	"github.com/atarasenko/shortlink/internal/models"
)

type PostHandler struct {
	baseURL    string
	urlService service.URLServiceIface
	logger     *zap.Logger
}

func NewPost(baseURL string, s service.URLServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		baseURL:    baseURL,
		urlService: s,
		logger:     l,
	}
}

// Shorten handles POST /shorten requests. Validation happens before any
// store call; a missing or empty url field never creates a record.
func (h *PostHandler) Shorten(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	var request models.ShortenRequest

	err := decodeJSONBody(res, req, &request)
	if err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeError(res, mr.status, mr.msg)
		} else {
			log.Print(err.Error())
			writeError(res, http.StatusInternalServerError, errServer)
		}
		return
	}

	if request.URL == "" {
		writeError(res, http.StatusBadRequest, errURLRequired)
		return
	}

	r, err := h.urlService.CreateShortLink(ctx, request.URL)
	if err != nil {
		h.logger.Error("unable to create short link", zap.Error(err))
		writeError(res, http.StatusInternalServerError, errServer)
		return
	}

	writeJSON(res, http.StatusOK, models.ShortenResponse{
		ShortURL:    h.baseURL + "/" + r.ShortID,
		OriginalURL: r.OriginalURL,
		ShortID:     r.ShortID,
	})
}
