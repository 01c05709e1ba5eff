package naming

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{name: "spaces", value: "Alpha ADRC", want: "alpha-adrc"},
		{name: "punctuation runs", value: "  Beta -- ADRC (west)  ", want: "beta-adrc-west"},
		{name: "accents", value: "Université Clinique", want: "universite-clinique"},
		{name: "apostrophe dropped", value: "St. Mary's", want: "st-marys"},
		{name: "digits kept", value: "Center 42", want: "center-42"},
		{name: "empty", value: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.value); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	short := "Alpha ADRC Accepted"
	if got := SanitizeLabel(short); got != short {
		t.Fatalf("short label changed: %q", got)
	}
	long := strings.Repeat("x", LabelMaxLength+10)
	if got := SanitizeLabel(long); len(got) != LabelMaxLength {
		t.Fatalf("expected %d chars, got %d", LabelMaxLength, len(got))
	}
}

func TestSanitizeGroupID(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{value: "Alpha ADRC", want: "alpha_adrc"},
		{value: "release-alpha", want: "release-alpha"},
		{value: "A/B.C!", want: "abc"},
		{value: "snake_case-ok", want: "snake_case-ok"},
	}
	for _, tc := range cases {
		if got := SanitizeGroupID(tc.value); got != tc.want {
			t.Errorf("SanitizeGroupID(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
