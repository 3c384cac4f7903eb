package app

import (
	"net/http"

	"github.com/avolkaev/cinema-booking-system/api"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "UP",
		Env:     app.config.Env,
		Version: version,
	}

	app.writeJSON(w, http.StatusOK, resp, nil)
}
