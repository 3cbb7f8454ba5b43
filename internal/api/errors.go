package api

import (
	"encoding/json"
	"net/http"
)

// errorHeader carries the public error message for the request log. Internal
// error details never go in here.
const errorHeader = "X-Relay-Error"

type errorBody struct {
	Error string `json:"error"`
}

func (a *api) jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set(errorHeader, message)
	a.jsonResponse(w, status, errorBody{Error: message})
}

func (a *api) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	a.errorResponse(w, r, http.StatusNotFound, "Not found")
}

func (a *api) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	a.errorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}
