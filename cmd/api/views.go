// cmd/api/views.go
// This file renders the two HTML pages: the home page and the reset
// confirmation form.
package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.ParseFS(viewFS, "views/*.html"))

// render executes the named view into a buffer first so a template error
// never leaves a half-written page.
func (app *applicationDependencies) render(w http.ResponseWriter, r *http.Request, name string) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, nil); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// homeHandler handles GET /.
func (app *applicationDependencies) homeHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "index.html")
}

// showResetHandler handles GET /reset.
func (app *applicationDependencies) showResetHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "reset.html")
}
