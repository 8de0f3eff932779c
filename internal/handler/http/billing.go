package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/billing"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

type BillingHandler interface {
	CreateCharge(w http.ResponseWriter, r *http.Request)
	GetCharge(w http.ResponseWriter, r *http.Request)
	ListCharges(w http.ResponseWriter, r *http.Request)
}

type BillingHandlerImpl struct {
	billingService billing.BillingService
}

func NewBillingHandler(billingService billing.BillingService) BillingHandler {
	return &BillingHandlerImpl{billingService: billingService}
}

// CreateCharge implements BillingHandler.
func (h *BillingHandlerImpl) CreateCharge(w http.ResponseWriter, r *http.Request) {
	var createReq billing.CreateChargeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateCharge decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	chargeResponse, err := h.billingService.CreateCharge(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateCharge service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Charge created successfully", chargeResponse)
}

// GetCharge implements BillingHandler.
func (h *BillingHandlerImpl) GetCharge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	chargeResponse, err := h.billingService.GetCharge(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, chargeResponse)
}

// ListCharges implements BillingHandler.
func (h *BillingHandlerImpl) ListCharges(w http.ResponseWriter, r *http.Request) {
	charges, err := h.billingService.ListCharges(r.Context())
	if err != nil {
		slog.Error("ListCharges service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, charges)
}
