package httpapi

import (
	"net/http"

	"climate-server/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux, m *Metrics) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(mux, m),
		ReadHeaderTimeout: cfg.HTTPReadHeaderTimeout,
	}
}
