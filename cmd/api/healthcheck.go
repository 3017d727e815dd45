// cmd/api/healthcheck.go
package main

import (
	"context"
	"net/http"
	"time"
)

// healthzHandler reports that the process is up.
func (app *applicationDependencies) healthzHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"status":      "ok",
		"environment": app.config.environment,
		"version":     appVersion,
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readyzHandler reports whether the document store answers a ping.
func (app *applicationDependencies) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()

	if err := app.store.Ping(ctx); err != nil {
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusServiceUnavailable, "document store unavailable")
		return
	}
	if err := app.writeJSON(w, http.StatusOK, envelope{"status": "ready"}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
