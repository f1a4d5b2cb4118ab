package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
	"github.com/cmlabs-hris/attendance-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-portal/internal/handler/http/response"
)

type QuickActionHandler interface {
	State(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	Dismiss(w http.ResponseWriter, r *http.Request)
	Select(w http.ResponseWriter, r *http.Request)
	Prefill(w http.ResponseWriter, r *http.Request)
}

type quickActionHandlerImpl struct {
	quickActionService quickaction.Service
}

func NewQuickActionHandler(quickActionService quickaction.Service) QuickActionHandler {
	return &quickActionHandlerImpl{quickActionService: quickActionService}
}

// State implements QuickActionHandler.
func (h *quickActionHandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.quickActionService.State(r.Context(), middleware.EmployeeID(r.Context())))
}

// Toggle implements QuickActionHandler.
func (h *quickActionHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	var req quickaction.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Toggle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	state, err := h.quickActionService.Toggle(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

// Dismiss implements QuickActionHandler.
func (h *quickActionHandlerImpl) Dismiss(w http.ResponseWriter, r *http.Request) {
	var req quickaction.DismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Dismiss decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	state, err := h.quickActionService.Dismiss(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

// Select implements QuickActionHandler.
func (h *quickActionHandlerImpl) Select(w http.ResponseWriter, r *http.Request) {
	var req quickaction.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Select decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	nav, err := h.quickActionService.Select(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nav)
}

// Prefill implements QuickActionHandler.
func (h *quickActionHandlerImpl) Prefill(w http.ResponseWriter, r *http.Request) {
	req := quickaction.PrefillRequest{Path: r.URL.Query().Get("path")}

	payload, err := h.quickActionService.ConsumePrefill(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payload)
}
