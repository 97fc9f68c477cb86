// internal/handler/customer_handler.go
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"

	appErrors "github.com/minicrm/campaign-backend/internal/errors"
	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/service"
)

type CustomerHandler struct {
	CustomerService *service.CustomerService
}

// BulkCreate accepts a single customer object or an array of them and
// returns a per-item summary. A bad record never fails the batch.
func (h *CustomerHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, appErrors.NewValidation("unreadable request body"))
		return
	}

	customers, err := decodeOneOrMany(raw)
	if err != nil {
		renderError(w, r, err)
		return
	}

	result, err := h.CustomerService.BulkCreate(customers, "")
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"message": fmt.Sprintf("%d customers added, %d skipped", result.Added, result.Skipped),
		"errors":  result.Errors,
	})
}

func decodeOneOrMany(raw []byte) ([]model.Customer, error) {
	var many []model.Customer
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	var one model.Customer
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, appErrors.NewValidation("body must be a customer object or an array of them")
	}
	return []model.Customer{one}, nil
}

// UploadCSV streams a multipart CSV file with the same dedupe/create
// semantics as bulk creation.
func (h *CustomerHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		renderError(w, r, appErrors.NewValidation("invalid multipart form"))
		return
	}

	addedBy := r.FormValue("addedBy")
	if addedBy == "" {
		renderError(w, r, appErrors.NewValidation("addedBy is required"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		renderError(w, r, appErrors.NewValidation("file is required"))
		return
	}
	defer file.Close()

	result, err := h.CustomerService.ImportCSV(file, addedBy)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"message": "Upload complete",
		"added":   result.Added,
		"skipped": result.Skipped,
	})
}
