package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/output"
)

// line offsets of the form; the header and a blank line come first
const (
	formTop   = 2
	formWidth = 60
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{
		renderHeader(),
		"",
		m.from.View(),
		m.to.View(),
		m.renderDateLine(),
	}
	if errs := m.renderFieldErrors(); errs != "" {
		parts = append(parts, errs)
	}

	border := stylePanelNormal
	if m.focus == focusResults {
		border = stylePanelFocused
	}
	results := border.
		Width(max(m.width-2, 20)).
		Height(max(m.resultsHeight(), 1)).
		Render(m.renderResults(m.width-4, m.resultsHeight()))
	parts = append(parts, results, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// fixedLines is every line of the screen that is not a dropdown row or
// field error: header, blank, three inputs, one results line inside its
// border, and the status bar.
const fixedLines = 9

// layout sizes the pickers and records where they are drawn. The To picker
// moves down while the From dropdown is open. Only the focused picker can be
// open, so each dropdown may use every line the fixed rows leave over.
func (m *Model) layout() {
	w := formWidth
	if m.width > 0 && m.width < w {
		w = m.width
	}
	m.from.SetWidth(w)
	m.to.SetWidth(w)
	if m.height > 0 {
		rows := m.height - fixedLines - len(m.fieldErrs)
		m.from.SetMaxRows(rows)
		m.to.SetMaxRows(rows)
	}
	m.from.SetOrigin(0, formTop)
	m.to.SetOrigin(0, formTop+m.from.height())
}

// formHeight is the number of lines above the results panel.
func (m Model) formHeight() int {
	h := formTop + m.from.height() + m.to.height() + 1
	return h + len(m.fieldErrs)
}

// resultsHeight is the number of content lines inside the results panel.
func (m Model) resultsHeight() int {
	// panel border plus status bar
	return m.height - m.formHeight() - 3
}

// renderHeader renders the brand line.
func renderHeader() string {
	return styleLogo.Render("ORRS") + "  " + styleMuted.Render("Online Railway Reservation System")
}

func (m Model) renderDateLine() string {
	label := styleMuted
	if m.focus == focusDate {
		label = styleHeader
	}
	in := m.dateInput
	if _, bad := m.fieldErrs["date"]; bad {
		in.TextStyle = styleError
	}
	return label.Render("Date:") + " " + in.View()
}

// renderFieldErrors lists form errors in field order.
func (m Model) renderFieldErrors() string {
	var lines []string
	for _, field := range []string{"from", "to", "date"} {
		if msg, ok := m.fieldErrs[field]; ok {
			lines = append(lines, styleError.Render("  ! "+msg))
		}
	}
	return strings.Join(lines, "\n")
}

// renderResults renders the train list panel content.
func (m Model) renderResults(width, height int) string {
	title := styleHeader.Render("TRAINS")

	if m.searching {
		return title + "\n" + styleLoading.Render(" Searching...")
	}
	if m.searchErr != nil {
		return title + "\n" + styleError.Render(" "+describeError(m.searchErr))
	}
	if len(m.trains) == 0 {
		if m.searched {
			return title + "\n" + styleMuted.Render(" No trains found for this route and date")
		}
		return title + "\n" + styleMuted.Render(" Pick two stations and a date, then press Enter")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(styleMuted.Render(fmt.Sprintf("  %d found", len(m.trains))))
	b.WriteString("\n")

	maxVisible := height - 1
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := visibleRange(m.trainCursor, len(m.trains), maxVisible)

	for i := start; i < end; i++ {
		b.WriteString(renderTrainLine(m.trains[i], width, i == m.trainCursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTrainLine renders one train: number, name, times, duration, fare and classes.
func renderTrainLine(t models.TrainResult, width int, selected bool) string {
	number := styleTrain.Render(fmt.Sprintf("%-6s", t.TrainNumber))
	times := styleTime.Render(t.Departure()) + " -> " + styleTime.Render(t.Arrival())
	duration := styleMuted.Render(fmt.Sprintf("%6s", output.FormatDuration(t.Duration())))

	fare := ""
	if f := t.CheapestFare(); f > 0 {
		fare = styleFare.Render(fmt.Sprintf("from %s", output.FormatFare(f)))
	}

	classes := make([]string, 0, len(t.ClassOptions))
	for _, c := range t.ClassOptions {
		classes = append(classes, renderClass(c))
	}

	// fixed columns: cursor, number, times, duration, fare
	nameWidth := width - 50
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := fmt.Sprintf("%-*s", nameWidth, truncate(t.TrainName, nameWidth))

	entry := " " + number + " " + name + " " + times + " " + duration
	if fare != "" {
		entry += "  " + fare
	}
	if len(classes) > 0 {
		entry += "  " + strings.Join(classes, " ")
	}

	if selected {
		return styleSelected.Render(">") + entry
	}
	return " " + entry
}

// renderClass renders a coach class with its availability, e.g. "3A:42".
func renderClass(c models.ClassOption) string {
	label := c.CoachCode
	switch strings.ToUpper(c.Status) {
	case "WL":
		return styleWaitlist.Render(label + ":WL")
	case "RAC":
		return styleWaitlist.Render(label + ":RAC")
	}
	if c.AvailableSeats <= 0 {
		return styleMuted.Render(label + ":-")
	}
	return styleAvailable.Render(fmt.Sprintf("%s:%d", label, c.AvailableSeats))
}

// renderStatusBar renders context-aware keyboard hints at the bottom.
func (m Model) renderStatusBar() string {
	var hints string
	switch m.focus {
	case focusFrom, focusTo:
		hints = "Up/Down:suggestions  Enter:pick/search  Tab:next  Ctrl+S:swap  Ctrl+R:reload  Ctrl+C:quit"
	case focusDate:
		hints = "Enter:search  Tab:next  Esc:clear  Ctrl+C:quit"
	case focusResults:
		hints = "j/k:navigate  PgUp/PgDn:page  Esc:date  /:from  q:quit"
	}

	line := " " + hints
	if m.status != "" {
		line = " " + m.status + "  |" + line
	}
	return styleStatusBar.Width(m.width).Render(truncate(line, m.width))
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-1] + "~"
}
