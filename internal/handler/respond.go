// internal/handler/respond.go
package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/render"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
)

// renderError maps the error taxonomy onto the HTTP surface: validation
// 400, upstream auth 401, everything else (including not-found on
// receipt updates) 500 with a JSON {error} body.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsValidation(err):
		status = http.StatusBadRequest
	case appErrors.IsUpstreamAuth(err):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		log.Println("⚠️ request failed:", err)
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
