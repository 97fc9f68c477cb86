// internal/handler/auth_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/render"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/service"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// GoogleSignIn exchanges the OAuth code posted by the frontend and
// returns (or creates) the matching user.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.Code == "" {
		renderError(w, r, appErrors.NewValidation("code is required"))
		return
	}

	user, err := h.AuthService.SignIn(r.Context(), body.Code)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, user)
}
