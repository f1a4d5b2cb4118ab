package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-portal/internal/pkg/validator"
)

type errorMapping struct {
	err     error
	status  int
	code    Code
	message string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{jwt.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized, "Invalid token"},
	{jwt.ErrMissingEmployee, http.StatusUnauthorized, CodeUnauthorized, "Token is not bound to an employee"},

	{calendar.ErrDateNotInView, http.StatusNotFound, CodeDateNotInView, "Date is not part of the visible month"},
	{calendar.ErrNoActiveView, http.StatusConflict, CodeNoActiveView, "Open a calendar month first"},
	{calendar.ErrAllSourcesFailed, http.StatusServiceUnavailable, CodeSourcesUnavailable, "Attendance data is temporarily unavailable"},

	{quickaction.ErrPopoverClosed, http.StatusConflict, CodePopoverClosed, "No day is selected"},
	{quickaction.ErrUnknownAction, http.StatusBadRequest, CodeUnknownAction, "Unknown quick action"},
	{quickaction.ErrPrefillNotFound, http.StatusNotFound, CodePrefillNotFound, "Nothing to prefill"},

	{context.Canceled, http.StatusServiceUnavailable, CodeRequestCancelled, "Request cancelled"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, CodeRequestCancelled, "Request cancelled"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			Fail(w, m.status, m.code, m.message, nil)
			return
		}
	}

	InternalServerError(w, "An unexpected error occurred")
}
