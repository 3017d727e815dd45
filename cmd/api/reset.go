// cmd/api/reset.go
package main

import (
	"net/http"
)

// resetHandler handles POST /reset. It clears and reseeds both collections,
// then answers with the created records when format=json (query string or
// form field) and otherwise redirects to the home page. Step failures are
// logged; only the JSON form reports them to the caller.
func (app *applicationDependencies) resetHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	format := r.FormValue("format")

	result, err := app.models.Reset(r.Context())

	if format == "json" {
		if err != nil {
			app.storeErrorResponse(w, r, err)
			return
		}
		if err := app.writeJSON(w, http.StatusOK, result.Records(), nil); err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err != nil {
		app.logError(r, err)
	} else {
		app.logger.Info("collections reset",
			"books", len(result.Books),
			"wines", len(result.Wines),
			"request_id", requestIDFromContext(r.Context()),
		)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
