package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"xbt/internal/domain"
)

// FailureViewer displays failed test contexts of the last run in an interactive TUI
type FailureViewer struct{}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer() *FailureViewer {
	return &FailureViewer{}
}

// View displays the failures until the user exits
func (fv *FailureViewer) View(summary domain.RunSummary, failures []domain.TestFailure) error {
	if len(failures) == 0 {
		color.Green("✓ No failed browsers!")
		return nil
	}

	// Reviewed marks are kept for the lifetime of the viewer only
	reviewed := make(map[int]bool)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range failures {
		list.AddItem(listItemText(failure, i, false), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(summary, len(failures), len(reviewed)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index], index+1))
			detailsView.SetText(formatFailureDetails(failures[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				app.Stop()
				return nil
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					if reviewed[index] {
						delete(reviewed, index)
					} else {
						reviewed[index] = true
					}
					list.SetItemText(index, listItemText(failures[index], index, reviewed[index]), "")
					updateHeader()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(summary domain.RunSummary, failed, reviewed int) string {
	return fmt.Sprintf(" Failed browsers (%d of %d contexts, %d reviewed) | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, q to exit ",
		failed, summary.TotalContexts, reviewed)
}

func listItemText(failure domain.TestFailure, index int, reviewed bool) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Context %d", index+1)
	}
	if reviewed {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails renders a failure using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Scenario: %s[white]\n\n", failure.Scenario)
	fmt.Fprintf(w, "[cyan]Browser:\t%s[white]\n", failure.Capability)
	fmt.Fprintf(w, "[cyan]Failure:\t%s[white]\n", failure.Kind)
	if failure.SessionID != "" {
		fmt.Fprintf(w, "[cyan]Session:\t%s[white]\n", failure.SessionID)
	}
	if failure.SessionURL != "" {
		fmt.Fprintf(w, "[cyan]Job:\t%s[white]\n", failure.SessionURL)
	}
	fmt.Fprintf(w, "[cyan]Duration:\t%s[white]\n\n", failure.Duration.Round(time.Millisecond))

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	w.Flush()
	return builder.String()
}

func formatFailureStats(failure domain.TestFailure, number int) string {
	browser := failure.Capability
	if browser == "" {
		browser = "Unknown browser"
	}
	scenario := failure.Scenario
	if scenario == "" {
		scenario = fmt.Sprintf("Context %d", number)
	}
	return fmt.Sprintf("[cyan]browser:[white] [yellow]%s[white] :: [yellow]%s[white]\n", browser, scenario)
}
