package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthSuite struct {
	BaseSuite
}

func TestAuthSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestRegisterLoginRefresh() {
	email := fmt.Sprintf("admin-%s@cinema.test", uuid.NewString())
	password := "Sup3rSecret!"

	scenarios := []Scenario{
		{
			Name:           "registration succeeds",
			Method:         http.MethodPost,
			URL:            "/api/auth/register",
			Body:           jsonBody(s.T(), map[string]string{"email": email, "password": password}),
			ExpectedStatus: http.StatusCreated,
		},
		{
			Name:           "duplicate registration conflicts",
			Method:         http.MethodPost,
			URL:            "/api/auth/register",
			Body:           jsonBody(s.T(), map[string]string{"email": email, "password": password}),
			ExpectedStatus: http.StatusConflict,
		},
		{
			Name:           "login with wrong password fails",
			Method:         http.MethodPost,
			URL:            "/api/auth/login",
			Body:           jsonBody(s.T(), map[string]string{"email": email, "password": "WrongPass1!"}),
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "login succeeds and token refreshes",
			Method:         http.MethodPost,
			URL:            "/api/auth/login",
			Body:           jsonBody(s.T(), map[string]string{"email": email, "password": password}),
			ExpectedStatus: http.StatusOK,
			AfterTestFunc: func(t testing.TB, testApp *TestApp, res *http.Response) {
				var tokenResp struct {
					Token string `json:"token"`
				}
				require.NoError(t, json.NewDecoder(res.Body).Decode(&tokenResp))
				require.NotEmpty(t, tokenResp.Token)

				refresh, err := prepareRequest(http.MethodPost, "/api/auth/refresh-token",
					jsonBody(t, map[string]string{"token": tokenResp.Token}), nil)
				require.NoError(t, err)

				rec := httptest.NewRecorder()
				testApp.App.Routes().ServeHTTP(rec, refresh)
				require.Equal(t, http.StatusOK, rec.Code)
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *AuthSuite) TestProtectedRoutesRequireToken() {
	scenarios := []Scenario{
		{
			Name:           "admin mutation without token is rejected",
			Method:         http.MethodPost,
			URL:            "/api/halls",
			Body:           jsonBody(s.T(), map[string]string{"name": "Unauthorized Hall"}),
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "admin mutation with garbage token is rejected",
			Method:         http.MethodPost,
			URL:            "/api/halls",
			Body:           jsonBody(s.T(), map[string]string{"name": "Unauthorized Hall"}),
			Headers:        map[string]string{"Authorization": "Bearer not.a.token"},
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "admin mutation with valid token passes",
			Method:         http.MethodPost,
			URL:            "/api/halls",
			Body:           jsonBody(s.T(), map[string]string{"name": "Authorized Hall"}),
			Headers:        authHeaders(s.T(), s.app),
			ExpectedStatus: http.StatusCreated,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
