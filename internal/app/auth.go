package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

func (app *Application) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	admin := domain.Admin{
		Email: input.Email,
	}

	err = admin.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.adminRepo.Create(r.Context(), &admin)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			logger.Warn("registration attempt for existing email")
			app.conflictResponse(w, r, "An account with this email already exists")
		default:
			logger.Error("failed to create admin", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.AdminResponse{
		Id:        admin.ID,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	admin, err := app.adminRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent admin")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get admin by email during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	match, err := admin.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return
	}

	app.writeToken(w, r, admin.ID)
}

// RefreshToken exchanges a still-valid token for a fresh one. The admin is
// looked up again so a deleted account cannot keep refreshing its way in.
func (app *Application) RefreshToken(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RefreshTokenRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	adminId, err := app.parseToken(input.Token)
	if err != nil {
		logger.Warn("refresh attempt with invalid token", "error", err)
		app.unauthorizedAccessResponse(w, r)
		return
	}

	exists, err := app.adminRepo.Exists(r.Context(), adminId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !exists {
		logger.Warn("refresh attempt for non-existent admin", "adminId", adminId)
		app.unauthorizedAccessResponse(w, r)
		return
	}

	app.writeToken(w, r, adminId)
}

func (app *Application) writeToken(w http.ResponseWriter, r *http.Request, adminId int) {
	token, expiresAt, err := app.issueToken(adminId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) issueToken(adminId int) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(app.config.JWT.Expiry)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(adminId),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(app.config.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
