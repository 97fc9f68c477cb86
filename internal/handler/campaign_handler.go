// internal/handler/campaign_handler.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/service"
)

type CampaignHandler struct {
	CampaignService *service.CampaignService
}

type campaignRequest struct {
	Name    string       `json:"name"`
	Rules   []model.Rule `json:"rules"`
	Logic   string       `json:"logic"`
	AddedBy string       `json:"addedBy"`
}

// Preview returns the audience count for a rule set without creating
// anything, used for UI feedback before commit.
func (h *CampaignHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var body campaignRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderError(w, r, appErrors.NewValidation("invalid request body"))
		return
	}

	size, err := h.CampaignService.PreviewAudience(body.Rules, body.Logic, body.AddedBy)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int{"audienceSize": size})
}

// Create persists the campaign and triggers the send flow. Delivery
// outcomes arrive later via receipts, never in this response.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body campaignRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderError(w, r, appErrors.NewValidation("invalid request body"))
		return
	}

	campaign, err := h.CampaignService.CreateCampaign(body.Name, body.Rules, body.Logic, body.AddedBy)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, campaign)
}

// List returns the campaigns created by the given email, newest first.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		renderError(w, r, appErrors.NewValidation("Email is required"))
		return
	}

	campaigns, err := h.CampaignService.ListCampaigns(email)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, campaigns)
}

// Logs returns a campaign's communication logs, newest first.
func (h *CampaignHandler) Logs(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, appErrors.NewValidation("invalid campaign id"))
		return
	}

	logs, err := h.CampaignService.ListLogs(id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, logs)
}
