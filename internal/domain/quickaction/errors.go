package quickaction

import "errors"

var (
	ErrPopoverClosed   = errors.New("quick action popover is not open")
	ErrUnknownAction   = errors.New("unknown quick action")
	ErrPrefillNotFound = errors.New("no prefill payload for path")
)
