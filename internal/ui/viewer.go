package ui

import "xbt/internal/domain"

// Viewer displays failed test contexts in an interactive TUI
type Viewer interface {
	View(summary domain.RunSummary, failures []domain.TestFailure) error
}
