package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jwebster45206/pokedex-engine/internal/journal"
)

// downJournal is a journal whose backing store is unreachable.
type downJournal struct{ *journal.MemoryJournal }

func (downJournal) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))

	tests := []struct {
		name            string
		journal         journal.Journal
		expectedStatus  int
		expectedHealth  string
		expectedJournal string
	}{
		{
			name:            "all healthy",
			journal:         journal.NewMemoryJournal(10),
			expectedStatus:  http.StatusOK,
			expectedHealth:  "healthy",
			expectedJournal: "healthy",
		},
		{
			name:            "unreachable journal",
			journal:         downJournal{journal.NewMemoryJournal(10)},
			expectedStatus:  http.StatusServiceUnavailable,
			expectedHealth:  "degraded",
			expectedJournal: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.journal, logger)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if rr.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
			}

			var response HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Status != tt.expectedHealth {
				t.Errorf("Expected status '%s', got '%s'", tt.expectedHealth, response.Status)
			}
			if response.Service != "pokedex-engine" {
				t.Errorf("Expected service 'pokedex-engine', got '%s'", response.Service)
			}
			if got := response.Components["journal"]; got != tt.expectedJournal {
				t.Errorf("Expected journal status '%s', got '%s'", tt.expectedJournal, got)
			}
			if time.Since(response.Timestamp) > time.Second {
				t.Errorf("Health check timestamp seems old: %v", response.Timestamp)
			}
		})
	}
}
