package parser

import "xbt/internal/domain"

// Parser turns test results into failures for display
type Parser interface {
	ParseFailure(result domain.TestResult) []domain.TestFailure
}
