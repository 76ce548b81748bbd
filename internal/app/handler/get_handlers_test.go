package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atarasenko/shortlink/internal/mocks"
	"github.com/atarasenko/shortlink/internal/storage"
)

func createTestHandler(mockService *mocks.MockURLServiceIface) *GetHandler {
	logger, _ := zap.NewDevelopment()
	return NewGet(mockService, logger)
}

func withShortIDParam(req *http.Request, shortID string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{"shortId"},
			Values: []string{shortID},
		},
	}))
}

func TestRedirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockURLServiceIface(ctrl)
	handler := createTestHandler(mockService)

	tests := []struct {
		name             string
		shortID          string
		mockReturn       *storage.ShortLink
		mockErr          error
		expectedCode     int
		expectedLocation string
		expectedBody     string
	}{
		{
			name:             "Valid short ID",
			shortID:          "abc12345",
			mockReturn:       &storage.ShortLink{ShortID: "abc12345", OriginalURL: "https://example.com", Clicks: 1},
			mockErr:          nil,
			expectedCode:     http.StatusFound,
			expectedLocation: "https://example.com",
		},
		{
			name:         "Unknown short ID",
			shortID:      "nonexist",
			mockReturn:   nil,
			mockErr:      storage.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"URL not found"}`,
		},
		{
			name:         "Storage failure",
			shortID:      "abc12345",
			mockReturn:   nil,
			mockErr:      errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().Visit(gomock.Any(), tt.shortID).Return(tt.mockReturn, tt.mockErr)

			req := httptest.NewRequest(http.MethodGet, "/"+tt.shortID, nil)
			req = withShortIDParam(req, tt.shortID)
			w := httptest.NewRecorder()

			handler.Redirect(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, resp.Header.Get("Location"))
			}
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockURLServiceIface(ctrl)
	handler := createTestHandler(mockService)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		shortID      string
		mockReturn   *storage.ShortLink
		mockErr      error
		expectedCode int
		expectedBody string
	}{
		{
			name:    "Existing short ID",
			shortID: "abc12345",
			mockReturn: &storage.ShortLink{
				ShortID:     "abc12345",
				OriginalURL: "https://example.com",
				Clicks:      3,
				CreatedAt:   createdAt,
			},
			mockErr:      nil,
			expectedCode: http.StatusOK,
			expectedBody: `{"shortId":"abc12345","originalUrl":"https://example.com","clicks":3,"createdAt":"2025-06-01T12:00:00Z"}`,
		},
		{
			name:         "Unknown short ID",
			shortID:      "nonexist",
			mockReturn:   nil,
			mockErr:      storage.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"URL not found"}`,
		},
		{
			name:         "Storage failure",
			shortID:      "abc12345",
			mockReturn:   nil,
			mockErr:      errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService.EXPECT().GetByShortID(gomock.Any(), tt.shortID).Return(tt.mockReturn, tt.mockErr)

			req := httptest.NewRequest(http.MethodGet, "/stats/"+tt.shortID, nil)
			req = withShortIDParam(req, tt.shortID)
			w := httptest.NewRecorder()

			handler.Stats(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockURLServiceIface(ctrl)
	handler := createTestHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().PingContext(gomock.Any()).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		handler.Ping(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Failure", func(t *testing.T) {
		mockService.EXPECT().PingContext(gomock.Any()).Return(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		handler.Ping(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
