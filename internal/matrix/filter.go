package matrix

import (
	"path/filepath"
	"strings"

	"xbt/internal/domain"
)

// Filter narrows a matrix by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps capabilities whose label ("firefox 45.0 on Linux") matches pattern.
// Supports wildcards like "*safari*" or "firefox*"; a pattern without wildcards is a
// case-insensitive substring match.
func (f *Filter) FilterByName(caps []domain.Capability, pattern string) []domain.Capability {
	if pattern == "" {
		return caps
	}

	pattern = strings.ToLower(pattern)
	var filtered []domain.Capability

	for _, c := range caps {
		label := strings.ToLower(c.Label())

		// Try to match using filepath.Match (supports * and ? wildcards)
		if matched, err := filepath.Match(pattern, label); err == nil && matched {
			filtered = append(filtered, c)
			continue
		}

		// Labels contain spaces, so fall back to matching every non-empty part in order
		if strings.Contains(pattern, "*") {
			if matchParts(label, strings.Split(pattern, "*")) {
				filtered = append(filtered, c)
			}
			continue
		}

		if !strings.Contains(pattern, "?") && strings.Contains(label, pattern) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}

// matchParts reports whether the non-empty parts occur in label in order
func matchParts(label string, parts []string) bool {
	found := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		i := strings.Index(label, part)
		if i < 0 {
			return false
		}
		label = label[i+len(part):]
		found = true
	}
	return found
}
