package matrix

import (
	"testing"

	"xbt/internal/domain"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	caps := Default()

	tests := []struct {
		name     string
		pattern  string
		expected int // Expected number of matches
	}{
		{name: "empty pattern returns all", pattern: "", expected: 3},
		{name: "wildcard pattern matches prefix", pattern: "firefox*", expected: 1},
		{name: "wildcard pattern matches substring", pattern: "*safari*", expected: 1},
		{name: "simple contains match", pattern: "Linux", expected: 1},
		{name: "case insensitive", pattern: "INTERNET", expected: 1},
		{name: "parts in order", pattern: "*explorer*windows*", expected: 1},
		{name: "parts out of order", pattern: "*windows*explorer*", expected: 0},
		{name: "no matches", pattern: "*opera*", expected: 0},
		{name: "question mark wildcard", pattern: "firefox 4?.0 on linux", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(caps, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty matrix", func(t *testing.T) {
		result := filter.FilterByName([]domain.Capability{}, "*firefox*")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("default version label", func(t *testing.T) {
		caps := []domain.Capability{{OS: "Linux", Browser: "chrome"}, {OS: "Linux", Version: "90", Browser: "chrome"}}
		result := filter.FilterByName(caps, "*latest*")
		if len(result) != 1 {
			t.Errorf("expected 1 match, got %d", len(result))
		}
	})
}
