package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingSuite struct {
	BaseSuite
}

func TestBookingSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(BookingSuite))
}

const bookingGrid = `[["disabled","standard","standard"],["vip","vip","vip"]]`

func (s *BookingSuite) TestSeatClaimFlow() {
	movieID := insertMovie(s.T(), s.app, "The Silent Harbor")
	hallID := insertHall(s.T(), s.app, "Claim Flow Hall", bookingGrid)
	openSession := insertSession(s.T(), s.app, movieID, hallID, "2026-09-01", "14:00", "open")
	closedSession := insertSession(s.T(), s.app, movieID, hallID, "2026-09-01", "17:30", "closed")

	scenarios := []Scenario{
		{
			Name:   "claim two seats",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": openSession,
				"seats":     []map[string]int{{"row": 0, "column": 1}, {"row": 1, "column": 2}},
			}),
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, testApp *TestApp, res *http.Response) {
				require.Equal(t, 2, countTickets(t, testApp, openSession))
			},
		},
		{
			Name:   "repeated claim converges to the same ticket",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": openSession,
				"seats":     []map[string]int{{"row": 0, "column": 1}},
			}),
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, testApp *TestApp, res *http.Response) {
				require.Equal(t, 2, countTickets(t, testApp, openSession))
			},
		},
		{
			Name:   "seat outside the grid is rejected",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": openSession,
				"seats":     []map[string]int{{"row": 9, "column": 0}},
			}),
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:   "disabled seat is rejected",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": openSession,
				"seats":     []map[string]int{{"row": 0, "column": 0}},
			}),
			ExpectedStatus: http.StatusUnprocessableEntity,
		},
		{
			Name:   "closed session rejects claims",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": closedSession,
				"seats":     []map[string]int{{"row": 0, "column": 1}},
			}),
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:   "unknown session is not found",
			Method: http.MethodPost,
			URL:    "/api/update-seats",
			Body: jsonBody(s.T(), map[string]any{
				"sessionId": 999999,
				"seats":     []map[string]int{{"row": 0, "column": 1}},
			}),
			ExpectedStatus: http.StatusNotFound,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}

	s.Run("session detail reports sold tickets", func() {
		req, err := prepareRequest(http.MethodGet, fmt.Sprintf("/api/session?sessionId=%d", openSession), nil, nil)
		s.Require().NoError(err)

		rec := httptest.NewRecorder()
		s.app.App.Routes().ServeHTTP(rec, req)
		s.Require().Equal(http.StatusOK, rec.Code)

		var detail struct {
			Status      string `json:"status"`
			SoldTickets []struct {
				Row    int    `json:"row"`
				Column int    `json:"column"`
				Status string `json:"status"`
			} `json:"soldTickets"`
		}
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&detail))

		s.Equal("open", detail.Status)
		s.Len(detail.SoldTickets, 2)
		for _, ticket := range detail.SoldTickets {
			s.Equal("taken", ticket.Status)
		}
	})
}

// TestConcurrentClaims hammers one seat from many goroutines and expects the
// upsert to leave exactly one stored ticket with every request succeeding.
func (s *BookingSuite) TestConcurrentClaims() {
	movieID := insertMovie(s.T(), s.app, "Midnight Circuit")
	hallID := insertHall(s.T(), s.app, "Concurrency Hall", bookingGrid)
	sessionID := insertSession(s.T(), s.app, movieID, hallID, "2026-09-02", "21:00", "open")

	const workers = 10

	var wg sync.WaitGroup
	statuses := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			req, err := prepareRequest(http.MethodPost, "/api/update-seats", jsonBody(s.T(), map[string]any{
				"sessionId": sessionID,
				"seats":     []map[string]int{{"row": 1, "column": 1}},
			}), nil)
			if err != nil {
				return
			}

			rec := httptest.NewRecorder()
			s.app.App.Routes().ServeHTTP(rec, req)
			statuses[i] = rec.Code
		}(i)
	}

	wg.Wait()

	for i, status := range statuses {
		s.Equal(http.StatusOK, status, "request %d", i)
	}

	s.Equal(1, countTickets(s.T(), s.app, sessionID))
}

// TestSoldTicketGates verifies that a single sold ticket freezes the session
// and its hall against every destructive or shape-changing mutation.
func (s *BookingSuite) TestSoldTicketGates() {
	movieID := insertMovie(s.T(), s.app, "Paper Planes")
	hallID := insertHall(s.T(), s.app, "Frozen Hall", bookingGrid)
	sessionID := insertSession(s.T(), s.app, movieID, hallID, "2026-09-03", "14:00", "open")
	untouchedSession := insertSession(s.T(), s.app, movieID, hallID, "2026-09-03", "17:30", "open")

	claim, err := prepareRequest(http.MethodPost, "/api/update-seats", jsonBody(s.T(), map[string]any{
		"sessionId": sessionID,
		"seats":     []map[string]int{{"row": 0, "column": 1}},
	}), nil)
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, claim)
	s.Require().Equal(http.StatusOK, rec.Code)

	headers := authHeaders(s.T(), s.app)

	scenarios := []Scenario{
		{
			Name:           "session status is frozen",
			Method:         http.MethodPost,
			URL:            fmt.Sprintf("/api/sessions/%d/status", sessionID),
			Body:           jsonBody(s.T(), map[string]string{"status": "closed"}),
			Headers:        headers,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "session cannot be deleted",
			Method:         http.MethodDelete,
			URL:            fmt.Sprintf("/api/sessions/%d", sessionID),
			Headers:        headers,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "hall seat configuration is frozen",
			Method:         http.MethodPost,
			URL:            fmt.Sprintf("/api/halls/%d/config", hallID),
			Body:           jsonBody(s.T(), map[string]any{"seats": [][]string{{"standard"}}}),
			Headers:        headers,
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "hall prices are frozen",
			Method:         http.MethodPost,
			URL:            fmt.Sprintf("/api/halls/%d/prices", hallID),
			Body:           jsonBody(s.T(), map[string]any{"regularPrice": 350, "vipPrice": 550}),
			Headers:        headers,
			ExpectedStatus: http.StatusConflict,
		},
		{
			// The hall also has open sessions here; the ticket check runs
			// first and must be the reported reason.
			Name:           "hall cannot be deleted while tickets exist",
			Method:         http.MethodDelete,
			URL:            fmt.Sprintf("/api/halls/%d", hallID),
			Headers:        headers,
			ExpectedStatus: http.StatusConflict,
			ExpectedResponse: `{
				"message": "Hall has sessions with sold tickets and cannot be deleted"
			}`,
		},
		{
			Name:           "bulk status change skips the frozen session",
			Method:         http.MethodPost,
			URL:            "/api/sessions/status",
			Body:           jsonBody(s.T(), map[string]any{"hallId": hallID, "status": "closed"}),
			Headers:        headers,
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, testApp *TestApp, res *http.Response) {
				var resp struct {
					Updated int `json:"updated"`
					Skipped int `json:"skipped"`
				}
				require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
				require.Equal(t, 1, resp.Updated)
				require.Equal(t, 1, resp.Skipped)
			},
		},
		{
			Name:           "untouched session can still be deleted",
			Method:         http.MethodDelete,
			URL:            fmt.Sprintf("/api/sessions/%d", untouchedSession),
			Headers:        headers,
			ExpectedStatus: http.StatusNoContent,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
