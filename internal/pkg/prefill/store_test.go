package prefill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"/leave/new", "/leave/new"},
		{"leave/new", "/leave/new"},
		{"/leave/new/", "/leave/new"},
		{"//leave//new", "/leave/new"},
		{"/leave/new?date=2025-01-01", "/leave/new"},
		{"/leave/./new#top", "/leave/new"},
	}
	for _, c := range cases {
		got, err := NormalizePath(c.input)
		if err != nil {
			t.Errorf("NormalizePath(%q) error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", c.input, got, c.want)
		}
	}

	_, err := NormalizePath("   ")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestConsumeOnce(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set("leave/new/", Payload{"start_date": "2025-01-10"}))

	got, ok := s.ConsumeOnce("/leave/new")
	require.True(t, ok)
	assert.Equal(t, "2025-01-10", got["start_date"])

	_, ok = s.ConsumeOnce("/leave/new")
	assert.False(t, ok, "payload must only be readable once")
}

func TestSetOverwritesUnconsumed(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set("/leave/new", Payload{"start_date": "2025-01-10"}))
	require.NoError(t, s.Set("/leave/new", Payload{"start_date": "2025-01-11"}))
	assert.Equal(t, 1, s.Len())

	got, ok := s.ConsumeOnce("/leave/new")
	require.True(t, ok)
	assert.Equal(t, "2025-01-11", got["start_date"])
}
