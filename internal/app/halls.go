package app

import (
	"errors"
	"net/http"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

func (app *Application) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.Hall, 0, len(halls))
	for _, hall := range halls {
		resp = append(resp, toApiHall(hall))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHallSeatMap(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatMapResponse{Seats: seatMapToStrings(hall.Seats)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateHall creates a hall with an empty seat grid and the configured
// default prices. The grid and prices are set up with separate calls.
func (app *Application) CreateHall(w http.ResponseWriter, r *http.Request) {
	var input api.CreateHallRequest

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

	hall := domain.Hall{
		Name:         input.Name,
		Seats:        domain.SeatMap{},
		RegularPrice: app.config.Pricing.DefaultRegular,
		VipPrice:     app.config.Pricing.DefaultVip,
	}

	err = app.hallRepo.Create(r.Context(), &hall)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiHall(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteHall(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.hallRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHallHasSoldTickets):
			app.conflictResponse(w, r, "Hall has sessions with sold tickets and cannot be deleted")
		case errors.Is(err, domain.ErrHallHasOpenSessions):
			app.conflictResponse(w, r, "Hall has open sessions and cannot be deleted")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateCatalogCache(r.Context(), logger)

	logger.Info("hall deleted", "hallId", id, "adminId", app.contextGetAdminID(r))

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) UpdateHallSeatMap(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.UpdateSeatMapRequest

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

	seats := seatMapFromStrings(input.Seats)

	err = seats.Validate()
	if err != nil {
		app.unprocessableEntityResponse(w, r, err.Error())
		return
	}

	err = app.hallRepo.UpdateSeatMap(r.Context(), id, seats)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHallHasSoldTickets):
			app.conflictResponse(w, r, "Hall has sessions with sold tickets, seat configuration is frozen")
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

func (app *Application) UpdateHallPrices(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.UpdatePricesRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !input.RegularPrice.IsPositive() || !input.VipPrice.IsPositive() {
		app.unprocessableEntityResponse(w, r, "Prices must be greater than zero")
		return
	}

	err = app.hallRepo.UpdatePrices(r.Context(), id, input.RegularPrice, input.VipPrice)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHallHasSoldTickets):
			app.conflictResponse(w, r, "Hall has sessions with sold tickets, prices are frozen")
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

func toApiHall(hall domain.Hall) api.Hall {
	return api.Hall{
		Id:           hall.ID,
		Name:         hall.Name,
		Seats:        seatMapToStrings(hall.Seats),
		RegularPrice: hall.RegularPrice,
		VipPrice:     hall.VipPrice,
	}
}

func seatMapToStrings(seats domain.SeatMap) [][]string {
	rows := make([][]string, 0, len(seats))

	for _, row := range seats {
		cells := make([]string, 0, len(row))
		for _, category := range row {
			cells = append(cells, string(category))
		}
		rows = append(rows, cells)
	}

	return rows
}

func seatMapFromStrings(rows [][]string) domain.SeatMap {
	seats := make(domain.SeatMap, 0, len(rows))

	for _, row := range rows {
		cells := make([]domain.SeatCategory, 0, len(row))
		for _, category := range row {
			cells = append(cells, domain.SeatCategory(category))
		}
		seats = append(seats, cells)
	}

	return seats
}
