package climate

import (
	"database/sql"
	"net/http"

	"github.com/Masterminds/squirrel"

	"climate-server/internal/modules/climate/controller"
	"climate-server/internal/modules/climate/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, placeholder squirrel.PlaceholderFormat, exposeErrors bool) {
	climateRepository := repository.NewRepository(db, placeholder)
	climateController := controller.NewClimateController(climateRepository, exposeErrors)
	climateController.RegisterRoutes(mux)
}
