// The dashboard serves the worker's status file over HTTP so the
// processing state is visible without shell access to the worker host.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dvloznov/statement-reconciler/internal/config"
	"github.com/dvloznov/statement-reconciler/internal/logger"
	"github.com/dvloznov/statement-reconciler/internal/status"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Statement Processor Status</title>
<meta http-equiv="refresh" content="5"></head>
<body>
<h1>Statement Processor</h1>
<p>Status: <strong>%s</strong></p>
<p>Current file: <code>%s</code></p>
<p><em>Last worker update: %s</em></p>
</body>
</html>`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.LogLevel)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		snap, err := status.Read(cfg.StatusFile)
		if err != nil {
			http.Error(w, "cannot read status", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, page, snap.Status, snap.Filename, snap.LastUpdate)
	})

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		snap, err := status.Read(cfg.StatusFile)
		if err != nil {
			http.Error(w, "cannot read status", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})

	log.Info().Str("addr", cfg.DashboardAddr).Msg("Dashboard listening")
	if err := http.ListenAndServe(cfg.DashboardAddr, r); err != nil {
		log.Fatal().Err(err).Msg("Dashboard server failed")
	}
}
