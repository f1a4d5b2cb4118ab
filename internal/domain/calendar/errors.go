package calendar

import "errors"

var (
	ErrDateNotInView    = errors.New("date is not part of the visible month")
	ErrNoActiveView     = errors.New("no calendar month has been opened yet")
	ErrAllSourcesFailed = errors.New("every attendance source failed to load")
)
