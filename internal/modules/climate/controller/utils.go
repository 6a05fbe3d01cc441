package controller

import "climate-server/internal/modules/climate/types"

// Inclusive bounds of the tobs listing: the final year of the dataset.
const (
	tobsWindowStart = "2016-08-23"
	tobsWindowEnd   = "2017-08-23"
)

// indexRoutes is what GET / advertises.
var indexRoutes = []string{
	"/api/v1.0/precipitation",
	"/api/v1.0/stations",
	"/api/v1.0/tobs",
	"/api/v1.0/<start_date>",
	"/api/v1.0/<start>/<end>",
}

// flattenObservations turns (date, tobs) pairs into one alternating list:
// [date0, tobs0, date1, tobs1, ...].
func flattenObservations(obs []types.Observation) []any {
	out := make([]any, 0, 2*len(obs))
	for _, o := range obs {
		out = append(out, o.Date, o.Tobs)
	}
	return out
}
