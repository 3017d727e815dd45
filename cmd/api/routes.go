// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → rateLimit → router
//
// Current endpoints:
//
//	GET    /              – home page
//	GET    /reset         – reset confirmation form
//	POST   /reset         – remove and reseed books and wines
//	GET    /books         – list all books
//	POST   /books         – create a new book
//	GET    /books/:id     – retrieve a single book by ID
//	PUT    /books/:id     – replace an existing book
//	DELETE /books/:id     – delete a book by ID
//	(the same five routes exist under /wines)
//	GET    /healthz       – liveness probe
//	GET    /readyz        – readiness probe, pings the store
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/reset", app.showResetHandler)
	router.HandlerFunc(http.MethodPost, "/reset", app.resetHandler)

	books := newResourceHandler(app, app.models.Books)
	router.HandlerFunc(http.MethodGet, "/books", books.list)
	router.HandlerFunc(http.MethodPost, "/books", books.create)
	router.HandlerFunc(http.MethodGet, "/books/:id", books.show)
	router.HandlerFunc(http.MethodPut, "/books/:id", books.update)
	router.HandlerFunc(http.MethodDelete, "/books/:id", books.remove)

	wines := newResourceHandler(app, app.models.Wines)
	router.HandlerFunc(http.MethodGet, "/wines", wines.list)
	router.HandlerFunc(http.MethodPost, "/wines", wines.create)
	router.HandlerFunc(http.MethodGet, "/wines/:id", wines.show)
	router.HandlerFunc(http.MethodPut, "/wines/:id", wines.update)
	router.HandlerFunc(http.MethodDelete, "/wines/:id", wines.remove)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthzHandler)
	router.HandlerFunc(http.MethodGet, "/readyz", app.readyzHandler)

	// recoverPanic is outermost so it catches panics from every layer below.
	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
