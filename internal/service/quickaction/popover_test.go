package quickaction

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-portal/internal/domain/quickaction"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPopover() (*Popover, *fakeClock) {
	c := &fakeClock{t: time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)}
	return NewPopover(5*time.Second, c.now), c
}

func TestPopover_ToggleSameDateCloses(t *testing.T) {
	p, _ := newTestPopover()

	s := p.Toggle("2025-01-15", "cell-15")
	assert.True(t, s.Open)
	assert.Equal(t, "2025-01-15", s.DateKey)
	assert.Equal(t, "cell-15", s.Anchor)

	// Explicit close is not subject to the display window.
	s = p.Toggle("2025-01-15", "cell-15")
	assert.False(t, s.Open)
	assert.Equal(t, quickaction.State{}, s)
}

func TestPopover_ToggleOtherDateReplaces(t *testing.T) {
	p, c := newTestPopover()

	p.Toggle("2025-01-15", "cell-15")
	c.advance(time.Second)
	s := p.Toggle("2025-01-16", "cell-16")

	assert.True(t, s.Open)
	assert.Equal(t, "2025-01-16", s.DateKey)
	assert.Equal(t, c.t, s.OpenedAt)
}

func TestPopover_DismissRespectsMinimumDisplay(t *testing.T) {
	reasons := []quickaction.DismissReason{
		quickaction.DismissOutsideClick,
		quickaction.DismissScroll,
		quickaction.DismissResize,
		quickaction.DismissCancelKey,
	}

	for _, reason := range reasons {
		t.Run(string(reason), func(t *testing.T) {
			p, c := newTestPopover()
			p.Toggle("2025-01-15", "")

			c.advance(4999 * time.Millisecond)
			s, closed := p.Dismiss(reason)
			assert.False(t, closed)
			assert.True(t, s.Open)

			c.advance(time.Millisecond)
			s, closed = p.Dismiss(reason)
			assert.True(t, closed)
			assert.False(t, s.Open)
		})
	}
}

func TestPopover_ReplacementRestartsWindow(t *testing.T) {
	p, c := newTestPopover()

	p.Toggle("2025-01-15", "")
	c.advance(4 * time.Second)
	p.Toggle("2025-01-16", "")
	c.advance(2 * time.Second)

	_, closed := p.Dismiss(quickaction.DismissOutsideClick)
	assert.False(t, closed)
}

func TestPopover_DismissWhenClosed(t *testing.T) {
	p, _ := newTestPopover()

	s, closed := p.Dismiss(quickaction.DismissScroll)

	assert.False(t, closed)
	assert.False(t, s.Open)
}
