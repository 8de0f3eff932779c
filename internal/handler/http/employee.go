package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GenerateEnrollmentLink(w http.ResponseWriter, r *http.Request)
	EnrollFace(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Employee create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeResponse, err := h.employeeService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Employee create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employeeResponse)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	employeeResponse, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employeeResponse)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		slog.Error("Employee list service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Employee update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	employeeResponse, err := h.employeeService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Employee update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employeeResponse)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// GenerateEnrollmentLink implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GenerateEnrollmentLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	linkResponse, err := h.employeeService.GenerateEnrollmentLink(r.Context(), id)
	if err != nil {
		slog.Error("GenerateEnrollmentLink service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Enrollment link generated successfully", linkResponse)
}

// EnrollFace implements EmployeeHandler. Public endpoint: the one-time
// token is the only credential. Multipart form with fields "token",
// "embedding" (JSON array) and "photo" (file).
func (h *EmployeeHandlerImpl) EnrollFace(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("EnrollFace multipart parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	var embedding face.Embedding
	if raw := r.FormValue("embedding"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &embedding); err != nil {
			response.BadRequest(w, "Invalid embedding format", nil)
			return
		}
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("EnrollFace photo read error", "error", err)
		response.BadRequest(w, "Invalid photo upload", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	enrollReq := employee.EnrollFaceRequest{
		Token:      r.FormValue("token"),
		Embedding:  embedding,
		File:       file,
		FileHeader: fileHeader,
	}

	employeeResponse, err := h.employeeService.EnrollFace(r.Context(), enrollReq)
	if err != nil {
		slog.Error("EnrollFace service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Face enrolled successfully", employeeResponse)
}
