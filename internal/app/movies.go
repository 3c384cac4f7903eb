package app

import (
	"encoding/json"
	"net/http"

	"github.com/avolkaev/cinema-booking-system/api"
	"github.com/avolkaev/cinema-booking-system/internal/domain"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.Movie, 0, len(movies))
	for _, movie := range movies {
		resp = append(resp, toApiMovie(movie))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

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

	movie := domain.Movie{
		Title:    input.Title,
		Synopsis: input.Synopsis,
		Duration: input.Duration,
		Origin:   input.Origin,
		Poster:   input.Poster,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiMovie(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetMoviesByDate serves the customer-facing catalog: every movie that has at
// least one open session on the requested date. Responses are cached per date
// and catalog version.
func (app *Application) GetMoviesByDate(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	date, err := app.readDateParam(r, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if payload, ok := app.catalogCacheGet(r.Context(), logger, date); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	movies, err := app.movieRepo.GetByDateWithOpenSessions(r.Context(), date)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.MovieShowtimes, 0, len(movies))

	for _, movie := range movies {
		sessions := make([]api.ShowtimeSummary, 0, len(movie.Sessions))
		for _, s := range movie.Sessions {
			sessions = append(sessions, api.ShowtimeSummary{
				SessionId:    s.SessionID,
				Hall:         s.HallName,
				Time:         s.Time,
				RegularPrice: s.RegularPrice,
				VipPrice:     s.VipPrice,
			})
		}

		resp = append(resp, api.MovieShowtimes{
			Movie:    toApiMovie(movie.Movie),
			Sessions: sessions,
		})
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.catalogCacheSet(r.Context(), logger, date, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(payload, '\n'))
}

func toApiMovie(movie domain.Movie) api.Movie {
	return api.Movie{
		Id:       movie.ID,
		Title:    movie.Title,
		Synopsis: movie.Synopsis,
		Duration: movie.Duration,
		Origin:   movie.Origin,
		Poster:   movie.Poster,
	}
}
