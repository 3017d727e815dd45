// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// envelope wraps the JSON bodies the server produces on its own behalf
// (router errors, health checks), e.g. {"error": "..."}.
type envelope map[string]any

// readIDParam extracts the ":id" URL parameter added by httprouter. The value
// is passed to the store unchecked; the store decides whether it is valid.
func (app *applicationDependencies) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client. A nil pointer is written as null.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readPayload decodes the request body into a loosely typed field map.
// URL-encoded form posts are read field by field (first value wins); any
// other body is decoded as a single JSON object. An empty body yields an
// empty payload.
func (app *applicationDependencies) readPayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		payload := make(map[string]any, len(r.PostForm))
		for key := range r.PostForm {
			payload[key] = r.PostForm.Get(key)
		}
		return payload, nil
	}

	payload := map[string]any{}
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&payload)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	// Ensure there is no second JSON value in the body.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("body must only contain a single JSON value")
	}
	if payload == nil { // the body was a JSON null
		payload = map[string]any{}
	}
	return payload, nil
}
