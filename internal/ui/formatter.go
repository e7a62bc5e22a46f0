package ui

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"xbt/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stdout)
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintSummary displays run statistics followed by the failed contexts grouped by browser
func (f *Formatter) PrintSummary(summary domain.RunSummary, failures []domain.TestFailure) {
	w := f.out

	fmt.Fprint(w, "\n")
	cyan.Fprintln(w, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(w, "║                 Cross-Browser Run Statistics                  ║")
	cyan.Fprintln(w, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Browsers", white, fmt.Sprintf("%d", summary.Capabilities))
	f.separator()
	f.row("Scenarios", white, fmt.Sprintf("%d", summary.Scenarios))
	f.separator()
	f.row("Test Contexts", white, fmt.Sprintf("%d", summary.TotalContexts))
	f.separator()
	f.row("Passed", green, fmt.Sprintf("%d", summary.PassedContexts))
	f.separator()
	f.row("Failed", red, fmt.Sprintf("%d", summary.FailedContexts))
	f.separator()
	if summary.Unreported > 0 {
		f.row("Unreported Verdicts", yellow, fmt.Sprintf("%d", summary.Unreported))
		f.separator()
	}
	f.row("Duration", white, fmt.Sprintf("%.2fs", summary.Duration.Seconds()))
	f.separator()
	f.row("Workers", white, fmt.Sprintf("%d", summary.Workers))
	f.separator()
	f.row("Build", white, summary.RunID)
	fmt.Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(w)
	if summary.FailedContexts == 0 {
		green.Fprintln(w, "✓ All browsers passed!")
		return
	}
	red.Fprintf(w, "✗ %d of %d test context(s) failed\n", summary.FailedContexts, summary.TotalContexts)
	fmt.Fprintln(w)
	f.printFailureTree(failures)
}

func (f *Formatter) row(label string, c *color.Color, value string) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27s", truncate(value, 27))
	fmt.Fprintln(f.out, " │")
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// printFailureTree prints failures as browser -> scenario -> reason
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	byCapability := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byCapability[failure.Capability] = append(byCapability[failure.Capability], failure)
	}

	var keys []string
	for key := range byCapability {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		lastCap := i == len(keys)-1
		if lastCap {
			cyan.Fprintf(f.out, "└── %s\n", key)
		} else {
			cyan.Fprintf(f.out, "├── %s\n", key)
		}

		indent := "│   "
		if lastCap {
			indent = "    "
		}
		group := byCapability[key]
		for j, failure := range group {
			branch := "├── "
			if j == len(group)-1 {
				branch = "└── "
			}
			fmt.Fprint(f.out, indent+branch)
			yellow.Fprintf(f.out, "%s", failure.Scenario)
			fmt.Fprint(f.out, " ")
			red.Fprintf(f.out, "(%s) %s\n", failure.Kind, failure.Message)
			if failure.SessionURL != "" {
				cont := "│   "
				if j == len(group)-1 {
					cont = "    "
				}
				fmt.Fprintf(f.out, "%s%s    %s\n", indent, cont, failure.SessionURL)
			}
		}
	}
}

// PrintMatrix prints the browser matrix, optionally with the scenarios run on each entry
func (f *Formatter) PrintMatrix(caps []domain.Capability, scenarios []string, showScenarios bool) {
	green.Fprintf(f.out, "Found %d browser(s):\n\n", len(caps))

	for i, c := range caps {
		lastCap := i == len(caps)-1
		if lastCap {
			cyan.Fprintf(f.out, "└── %s\n", c.Label())
		} else {
			cyan.Fprintf(f.out, "├── %s\n", c.Label())
		}
		if !showScenarios {
			continue
		}

		for j, name := range scenarios {
			var prefix string
			switch {
			case lastCap && j == len(scenarios)-1:
				prefix = "    └── "
			case lastCap:
				prefix = "    ├── "
			case j == len(scenarios)-1:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, yellow.Sprint(name))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
