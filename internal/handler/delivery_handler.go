// internal/handler/delivery_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/minicrm/campaign-backend/internal/delivery"
	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/service"
)

// DeliveryHandler carries the two sides of the mock vendor loop: the
// vendor-facing send endpoint and the receipt callback.
type DeliveryHandler struct {
	Backend         delivery.Backend
	CampaignService *service.CampaignService
}

// VendorSend is the mock vendor boundary. In a real deployment this is a
// distinct external service, here it feeds the configured backend.
func (h *DeliveryHandler) VendorSend(w http.ResponseWriter, r *http.Request) {
	var body delivery.Dispatch
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.LogID == "" {
		renderError(w, r, appErrors.NewValidation("logId is required"))
		return
	}

	if err := h.Backend.Send(body); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"status": "Delivery initiated"})
}

// Receipt records a terminal delivery outcome against its log entry.
// Unknown logIds surface as an error response, never a silent 200.
func (h *DeliveryHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LogID  string `json:"logId"`
		Status string `json:"status"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderError(w, r, appErrors.NewValidation("invalid request body"))
		return
	}

	if err := h.CampaignService.HandleReceipt(body.LogID, model.LogStatus(body.Status)); err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "Status updated"})
}
