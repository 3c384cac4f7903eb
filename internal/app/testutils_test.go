package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/mocks"
	"github.com/avolkaev/cinema-booking-system/internal/validator"
	"github.com/shopspring/decimal"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			Env: "test",
			JWT: JWTConfig{
				Secret: "test-secret",
				Expiry: time.Hour,
			},
			Pricing: PricingConfig{
				DefaultRegular: decimal.NewFromInt(300),
				DefaultVip:     decimal.NewFromInt(500),
			},
		},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:   validator.NewValidator(),
		movieRepo:   &mocks.MockMovieRepo{},
		hallRepo:    &mocks.MockHallRepo{},
		sessionRepo: &mocks.MockSessionRepo{},
		ticketRepo:  &mocks.MockTicketRepo{},
		adminRepo:   &mocks.MockAdminRepo{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// asAdmin stores an admin id in the request context the way the
// authentication middleware does, so protected handlers can be called
// without a router.
func asAdmin(r *http.Request, adminId int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), adminIdContextKey, adminId))
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) == 0 {
			// Semantic 422s carry the message on the top-level response.
			if tt.wantErrMessage != "" && validationResp.Message != tt.wantErrMessage {
				t.Errorf("Error message = %v, want %v", validationResp.Message, tt.wantErrMessage)
			}
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if tt.wantErrMessage != "" && !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}
