package workflow

import "strings"

// Status is the approval state shared by every request family.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus accepts the upper-case API values as well as the lower-case
// database enum ("waiting_approval", "approved", ...). Unknown values map to
// the empty Status.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "waiting_approval", "submitted":
		return StatusPending
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	case "cancelled", "canceled":
		return StatusCancelled
	}
	return ""
}

// IsActive reports whether the request still takes part in projections.
// Everything except a cancelled (or unknown) request is active.
func (s Status) IsActive() bool {
	return s != StatusCancelled && s != ""
}

func (s Status) IsApproved() bool {
	return s == StatusApproved
}

// Label is the short status text shown on calendar badges.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "申請中"
	case StatusApproved:
		return "承認済"
	case StatusRejected:
		return "却下"
	case StatusCancelled:
		return "取消"
	}
	return ""
}

// Style is the badge style class for the status.
func (s Status) Style() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}
