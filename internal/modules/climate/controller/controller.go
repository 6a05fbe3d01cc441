package controller

import (
	"net/http"

	"climate-server/internal/modules/climate/repository"
)

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	repository repository.ClimateRepository
	// exposeErrors puts storage error text into 500 bodies (dev only).
	exposeErrors bool
}

func NewClimateController(repository repository.ClimateRepository, exposeErrors bool) ClimateController {
	return &climateControllerImpl{repository: repository, exposeErrors: exposeErrors}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobs)
	mux.HandleFunc("GET /api/v1.0/{start_date}", c.handleSummaryFrom)
	mux.HandleFunc("GET /api/v1.0/{start}/{end}", c.handleSummaryRange)
}
