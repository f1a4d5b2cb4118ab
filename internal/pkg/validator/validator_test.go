package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "2025"}
	invalid := []string{"abc", "123a", "", "-123", "+5", " 12"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestExceedsLength(t *testing.T) {
	if ExceedsLength("有給休暇", 4) {
		t.Errorf("ExceedsLength counts bytes instead of characters")
	}
	if !ExceedsLength("abcde", 4) {
		t.Errorf("ExceedsLength(%q, 4) = false, want true", "abcde")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "year", Message: "year must be a four digit year"},
		{Field: "month", Message: "month must be between 1 and 12"},
	}

	want := "year: year must be a four digit year; month: month must be between 1 and 12"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["month"] != "month must be between 1 and 12" {
		t.Errorf("ToMap() = %v", m)
	}
}
