package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/datekey"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-portal/internal/service/export"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
	Day(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	SetVisibility(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	// SSE
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.Service
	jwtService      jwt.Service
	today           func() datekey.Date
	keepalive       time.Duration
}

func NewCalendarHandler(calendarService calendar.Service, jwtService jwt.Service, today func() datekey.Date) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
		jwtService:      jwtService,
		today:           today,
		keepalive:       30 * time.Second,
	}
}

func (h *calendarHandlerImpl) targetMonth(r *http.Request) (datekey.Month, error) {
	req := calendar.MonthRequest{
		Year:  r.URL.Query().Get("year"),
		Month: r.URL.Query().Get("month"),
	}
	if err := req.Validate(h.today()); err != nil {
		return datekey.Month{}, err
	}
	return req.Target(), nil
}

// Month implements CalendarHandler.
func (h *calendarHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.calendarService.MonthView(r.Context(), middleware.EmployeeID(r.Context()), target.Year, target.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Day implements CalendarHandler.
func (h *calendarHandlerImpl) Day(w http.ResponseWriter, r *http.Request) {
	req := calendar.DayRequest{Date: chi.URLParam(r, "date")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	detail, err := h.calendarService.Detail(r.Context(), middleware.EmployeeID(r.Context()), req.Key())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Refresh implements CalendarHandler.
func (h *calendarHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.calendarService.Refresh(r.Context(), middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetVisibility implements CalendarHandler.
func (h *calendarHandlerImpl) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req calendar.VisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetVisibility decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.calendarService.SetVisibility(r.Context(), middleware.EmployeeID(r.Context()), *req.Visible); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Visibility updated", nil)
}

// Export implements CalendarHandler.
func (h *calendarHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Built off to the side so the live session keeps its month.
	view, err := h.calendarService.ExportView(r.Context(), middleware.EmployeeID(r.Context()), target.Year, target.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := export.Timesheet(view)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(view)))

	if err := f.Write(w); err != nil {
		slog.Error("Failed to write timesheet", "employee_id", view.EmployeeID, "month", export.SheetName(view), "error", err)
	}
}

// GetStreamToken generates a short-lived token for SSE connections
func (h *calendarHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateSSEToken(middleware.EmployeeID(r.Context()))
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, calendar.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes "calendar.changed" events for the employee's visible month
func (h *calendarHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.calendarService.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			if event.ID != "" {
				fmt.Fprintf(w, "id: %s\n", event.ID)
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
