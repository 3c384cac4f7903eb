package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

// GetSessionDetail serves the seat picker view for a single session,
// identified by the sessionId query parameter.
func (app *Application) GetSessionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("sessionId"))
	if err != nil || id < 1 {
		app.badRequestResponse(w, r, errors.New("invalid sessionId parameter"))
		return
	}

	detail, err := app.sessionRepo.GetDetail(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	sold, err := app.ticketRepo.GetBySession(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	tickets := make([]api.Ticket, 0, len(sold))
	for _, t := range sold {
		tickets = append(tickets, api.Ticket{
			Row:    t.Row,
			Column: t.Column,
			Status: t.Status,
		})
	}

	resp := api.SessionDetailResponse{
		Movie:  toApiMovie(detail.Movie),
		Hall:   detail.HallName,
		Date:   detail.Date,
		Time:   detail.Time,
		Status: string(detail.Status),
		Seats:  seatMapToStrings(detail.Seats),
		Prices: api.Prices{
			Regular: detail.RegularPrice,
			Vip:     detail.VipPrice,
		},
		Tickets: tickets,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := app.sessionRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.Session, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, toApiSession(session))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := app.readDateParam(r, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sessions, err := app.sessionRepo.GetByDate(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.SessionWithMovie, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, api.SessionWithMovie{
			Session:       toApiSession(session.Session),
			MovieTitle:    session.MovieTitle,
			MovieDuration: session.MovieDuration,
			MoviePoster:   session.MoviePoster,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateSessions schedules a batch of sessions. New sessions start closed and
// are published to the catalog with an explicit status change.
func (app *Application) CreateSessions(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateSessionsRequest

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

	sessions := make([]domain.NewSession, 0, len(input.Sessions))
	for _, s := range input.Sessions {
		sessions = append(sessions, domain.NewSession{
			MovieID: s.MovieId,
			HallID:  s.HallId,
			Date:    s.Date,
			Time:    s.Time,
		})
	}

	err = app.sessionRepo.CreateBatch(r.Context(), sessions)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("referenced movie or hall does not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	w.WriteHeader(http.StatusCreated)
}

func (app *Application) UpdateSessionTimes(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.UpdateSessionTimesRequest

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

	updates := make([]domain.SessionTimeUpdate, 0, len(input.Sessions))
	for _, s := range input.Sessions {
		updates = append(updates, domain.SessionTimeUpdate{
			ID:   s.Id,
			Time: s.Time,
		})
	}

	err = app.sessionRepo.UpdateTimes(r.Context(), updates)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.sessionRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionHasSoldTickets):
			app.conflictResponse(w, r, "Session has sold tickets and cannot be deleted")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	logger.Info("session deleted", "sessionId", id, "adminId", app.contextGetAdminID(r))

	w.WriteHeader(http.StatusNoContent)
}

// UpdateSessionsStatusByHall changes the status of every session in a hall.
// Sessions with sold tickets are skipped and reported, not failed.
func (app *Application) UpdateSessionsStatusByHall(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.UpdateSessionsStatusRequest

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

	summary, err := app.sessionRepo.SetStatusByHall(r.Context(), input.HallId, domain.SessionStatus(input.Status))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	resp := api.SessionsStatusResponse{
		Updated: summary.Updated,
		Skipped: summary.Skipped,
		Message: fmt.Sprintf("%d sessions updated, %d skipped due to sold tickets", summary.Updated, summary.Skipped),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.UpdateSessionStatusRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.sessionRepo.SetStatus(r.Context(), id, domain.SessionStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionHasSoldTickets):
			app.conflictResponse(w, r, "Session has sold tickets, status is frozen")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	w.WriteHeader(http.StatusNoContent)
}

func toApiSession(session domain.Session) api.Session {
	return api.Session{
		Id:      session.ID,
		MovieId: session.MovieID,
		HallId:  session.HallID,
		Date:    session.Date,
		Time:    session.Time,
		Status:  string(session.Status),
	}
}
