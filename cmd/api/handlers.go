// cmd/api/handlers.go
// This file contains the HTTP request handlers for the books and wines
// resources. Both resources share one generic implementation; each handler
// performs a single operation through its data.Model and writes the result
// as JSON, or the failure message as a plain text 500.
package main

import (
	"net/http"

	"github.com/aoideee/crud-api/internal/data"
)

// resourceHandler serves the five CRUD routes of one collection.
type resourceHandler[R any] struct {
	app   *applicationDependencies
	model data.Model[R]
}

func newResourceHandler[R any](app *applicationDependencies, model data.Model[R]) resourceHandler[R] {
	return resourceHandler[R]{app: app, model: model}
}

// respond writes v as a 200 JSON response.
func (h resourceHandler[R]) respond(w http.ResponseWriter, r *http.Request, v any) {
	if err := h.app.writeJSON(w, http.StatusOK, v, nil); err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// list handles GET /books and GET /wines.
func (h resourceHandler[R]) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.model.GetAll(r.Context())
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, recs)
}

// create handles POST /books and POST /wines. The new record is returned
// with its store-assigned id.
func (h resourceHandler[R]) create(w http.ResponseWriter, r *http.Request) {
	payload, err := h.app.readPayload(w, r)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	rec, err := data.Decode[R](payload)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}

	created, err := h.model.Insert(r.Context(), rec)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, created)
}

// show handles GET /books/:id and GET /wines/:id. An unknown id yields null.
func (h resourceHandler[R]) show(w http.ResponseWriter, r *http.Request) {
	rec, err := h.model.Get(r.Context(), h.app.readIDParam(r))
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, rec)
}

// update handles PUT /books/:id and PUT /wines/:id. Every field is replaced
// by the payload's value; fields the payload leaves out are cleared. An
// unknown id is a failure.
func (h resourceHandler[R]) update(w http.ResponseWriter, r *http.Request) {
	id := h.app.readIDParam(r)

	payload, err := h.app.readPayload(w, r)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	rec, err := data.Decode[R](payload)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}

	updated, err := h.model.Update(r.Context(), id, rec)
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, updated)
}

// remove handles DELETE /books/:id and DELETE /wines/:id, responding with
// the removed record or null.
func (h resourceHandler[R]) remove(w http.ResponseWriter, r *http.Request) {
	removed, err := h.model.Delete(r.Context(), h.app.readIDParam(r))
	if err != nil {
		h.app.storeErrorResponse(w, r, err)
		return
	}
	h.respond(w, r, removed)
}
