package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/modules/climate/views"
	"climate-server/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, &views.IndexData{Routes: indexRoutes}); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("index: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	prcp, err := c.repository.GetPrecipitation(r.Context())
	if err != nil {
		c.internalError(w, "precipitation: query failed", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, prcp)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	ids, err := c.repository.GetStationIDs(r.Context())
	if err != nil {
		c.internalError(w, "stations: query failed", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ids)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	window := types.DateRange{Start: tobsWindowStart, End: tobsWindowEnd}
	obs, err := c.repository.GetObservations(r.Context(), window)
	if err != nil {
		c.internalError(w, "tobs: query failed", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, flattenObservations(obs))
}

// handleSummaryFrom aggregates every measurement dated on or after start_date.
// The parameter is compared as a string and never parsed.
func (c *climateControllerImpl) handleSummaryFrom(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start_date")
	summary, err := c.repository.GetTemperatureSummary(r.Context(), types.DateRange{Start: start})
	if err != nil {
		c.internalError(w, "summary: query failed", err, "start", start)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary.Flatten())
}

func (c *climateControllerImpl) handleSummaryRange(w http.ResponseWriter, r *http.Request) {
	dr := types.DateRange{Start: r.PathValue("start"), End: r.PathValue("end")}
	summary, err := c.repository.GetTemperatureSummary(r.Context(), dr)
	if err != nil {
		c.internalError(w, "summary range: query failed", err, "start", dr.Start, "end", dr.End)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary.Flatten())
}

func (c *climateControllerImpl) internalError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, "error", err)...)
	utils.WriteInternalError(w, err, c.exposeErrors)
}
