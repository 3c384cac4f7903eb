package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAuthentication(t *testing.T) {
	app := newTestApplication()

	token, _, err := app.issueToken(7)
	if err != nil {
		t.Fatal(err)
	}

	otherApp := newTestApplication(func(a *Application) {
		a.config.JWT.Secret = "another-secret"
	})
	foreignToken, _, err := otherApp.issueToken(7)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantAdminId int
	}{
		{
			name:        "valid token passes through",
			header:      "Bearer " + token,
			wantStatus:  http.StatusOK,
			wantAdminId: 7,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret",
			header:     "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAdminId int

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAdminId = app.contextGetAdminID(r)
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/api/halls", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			app.requireAuthentication(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantAdminId != 0 && gotAdminId != tt.wantAdminId {
				t.Errorf("Admin id = %d, want %d", gotAdminId, tt.wantAdminId)
			}
		})
	}
}
