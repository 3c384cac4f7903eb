package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

// ClaimSeats marks the requested seats of a session as taken. Claims are
// idempotent per coordinate, so retries and concurrent requests for the same
// seat converge to a single ticket.
func (app *Application) ClaimSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.ClaimSeatsRequest

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

	detail, err := app.sessionRepo.GetDetail(r.Context(), input.SessionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Every seat is priced before anything is written, so a bad coordinate
	// rejects the whole request without claiming a partial set.
	for _, seat := range input.Seats {
		_, err = detail.SeatPrice(seat.Row, seat.Column)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionNotOpen):
				app.conflictResponse(w, r, "Session is not open for booking")
			case errors.Is(err, domain.ErrSeatNotSellable):
				app.unprocessableEntityResponse(w, r, fmt.Sprintf("Seat (%d, %d) is not sellable", seat.Row, seat.Column))
			case errors.Is(err, domain.ErrInvalidSeatMap):
				app.unprocessableEntityResponse(w, r, fmt.Sprintf("Seat (%d, %d) is outside the hall's seat grid", seat.Row, seat.Column))
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}
	}

	tickets := make([]api.Ticket, 0, len(input.Seats))

	for _, seat := range input.Seats {
		ticket, err := app.ticketRepo.ClaimSeat(r.Context(), input.SessionId, seat.Row, seat.Column)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.notFoundResponse(w, r)
			default:
				logger.Error("failed to claim seat", "sessionId", input.SessionId, "row", seat.Row, "column", seat.Column, "error", err)
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		tickets = append(tickets, api.Ticket{
			Row:    ticket.Row,
			Column: ticket.Column,
			Status: ticket.Status,
		})
	}

	resp := api.ClaimSeatsResponse{
		SessionId: input.SessionId,
		Tickets:   tickets,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
