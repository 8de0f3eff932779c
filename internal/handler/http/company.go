package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	UpdateMine(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMine implements CompanyHandler.
func (h *CompanyHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	companyResponse, err := h.companyService.GetMine(r.Context())
	if err != nil {
		slog.Error("GetMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResponse)
}

// UpdateMine implements CompanyHandler.
func (h *CompanyHandlerImpl) UpdateMine(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateMine decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyResponse, err := h.companyService.UpdateMine(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", companyResponse)
}
