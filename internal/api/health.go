package api

import "net/http"

func (a *api) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status": "ok",
	}

	a.jsonResponse(w, http.StatusOK, data)
}
