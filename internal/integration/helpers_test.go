package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// adminToken registers a throwaway admin and returns a bearer token for it.
func adminToken(t testing.TB, testApp *TestApp) string {
	email := fmt.Sprintf("admin-%s@cinema.test", uuid.NewString())
	password := "Sup3rSecret!"

	register, err := prepareRequest(http.MethodPost, "/api/auth/register", jsonBody(t, map[string]string{
		"email":    email,
		"password": password,
	}), nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, register)
	require.Equal(t, http.StatusCreated, rec.Code)

	login, err := prepareRequest(http.MethodPost, "/api/auth/login", jsonBody(t, map[string]string{
		"email":    email,
		"password": password,
	}), nil)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, login)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	return "Bearer " + resp.Token
}

func authHeaders(t testing.TB, testApp *TestApp) map[string]string {
	return map[string]string{"Authorization": adminToken(t, testApp)}
}

// Seed helpers insert directly so tests can arrange state without going
// through the endpoints under test.

func insertMovie(t testing.TB, testApp *TestApp, title string) int {
	var id int
	err := testApp.DB.QueryRow(context.Background(),
		`INSERT INTO movies (title, synopsis, duration, origin, poster) VALUES ($1, 'synopsis', '2h', 'USA', '/p.jpg') RETURNING id`,
		title,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertHall(t testing.TB, testApp *TestApp, name string, seats string) int {
	var id int
	err := testApp.DB.QueryRow(context.Background(),
		`INSERT INTO halls (name, seats, price_regular, price_vip) VALUES ($1, $2::jsonb, 300, 500) RETURNING id`,
		name, seats,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertSession(t testing.TB, testApp *TestApp, movieID, hallID int, date, timeOfDay, status string) int {
	var id int
	err := testApp.DB.QueryRow(context.Background(),
		`INSERT INTO sessions (movie_id, hall_id, date, time, status) VALUES ($1, $2, $3::date, $4::time, $5) RETURNING id`,
		movieID, hallID, date, timeOfDay, status,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func countTickets(t testing.TB, testApp *TestApp, sessionID int) int {
	var count int
	err := testApp.DB.QueryRow(context.Background(),
		`SELECT count(*) FROM sold_tickets WHERE session_id = $1`,
		sessionID,
	).Scan(&count)
	require.NoError(t, err)

	return count
}
