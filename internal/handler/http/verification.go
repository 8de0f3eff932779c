package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/verification"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

// maxFrameBytes caps one camera frame submission.
const maxFrameBytes = 5 << 20

type VerificationHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	SubmitFrame(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type VerificationHandlerImpl struct {
	verificationService verification.VerificationService
}

func NewVerificationHandler(verificationService verification.VerificationService) VerificationHandler {
	return &VerificationHandlerImpl{verificationService: verificationService}
}

// Start implements VerificationHandler.
func (h *VerificationHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var startReq verification.StartRequest

	if err := json.NewDecoder(r.Body).Decode(&startReq); err != nil {
		slog.Error("Verification start decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sessionResponse, err := h.verificationService.Start(r.Context(), startReq)
	if err != nil {
		slog.Error("Verification start service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Verification session started", sessionResponse)
}

// SubmitFrame implements VerificationHandler. The body is the raw frame
// payload; only the newest frame matters, older ones are dropped.
func (h *VerificationHandlerImpl) SubmitFrame(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	frame, err := io.ReadAll(io.LimitReader(r.Body, maxFrameBytes))
	if err != nil {
		slog.Error("Verification frame read error", "error", err)
		response.BadRequest(w, "Could not read frame body", nil)
		return
	}

	sessionResponse, err := h.verificationService.SubmitFrame(r.Context(), sessionID, frame)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessionResponse)
}

// Status implements VerificationHandler.
func (h *VerificationHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	sessionResponse, err := h.verificationService.Status(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessionResponse)
}

// Cancel implements VerificationHandler.
func (h *VerificationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := h.verificationService.Cancel(r.Context(), sessionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Verification session cancelled", nil)
}
