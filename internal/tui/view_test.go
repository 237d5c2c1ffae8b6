package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/testutil"
)

func TestModel_View_NoSize(t *testing.T) {
	m := newTestModel(nil)
	m.width, m.height = 0, 0

	testutil.AssertEqual(t, m.View(), "Loading...")
}

func TestModel_View(t *testing.T) {
	m := withStations(newTestModel(nil))

	output := m.View()
	testutil.AssertContains(t, output, "ORRS")
	testutil.AssertContains(t, output, "From:")
	testutil.AssertContains(t, output, "To:")
	testutil.AssertContains(t, output, "Date:")
	testutil.AssertContains(t, output, "TRAINS")
	testutil.AssertContains(t, output, "Pick two stations")
}

func TestModel_View_Loading(t *testing.T) {
	m := newTestModel(nil)

	testutil.AssertContains(t, m.View(), "Loading stations...")
}

func TestModel_View_FillsHeight(t *testing.T) {
	m := withStations(newTestModel(nil))

	testutil.AssertEqual(t, lipgloss.Height(m.View()), m.height)

	// a closed dropdown gives the space back to the results panel
	m.setFocus(focusDate)
	m.layout()
	testutil.AssertEqual(t, lipgloss.Height(m.View()), m.height)
}

func manyStations(n int) []models.Station {
	out := make([]models.Station, n)
	for i := range out {
		out[i] = models.Station{
			ID:   int64(i + 1),
			Code: fmt.Sprintf("S%02d", i),
			Name: fmt.Sprintf("Station %02d", i),
			City: fmt.Sprintf("Town %02d", i),
		}
	}
	return out
}

func TestModel_View_ShortTerminal(t *testing.T) {
	m := newTestModel(nil)
	m, _ = step(m, stationsLoadedMsg{gen: m.loadGen, stations: manyStations(12)})
	m, _ = step(m, tea.WindowSizeMsg{Width: 80, Height: 15})

	// 15 lines leave room for six suggestion rows
	testutil.AssertTrue(t, m.from.Open())
	testutil.AssertLen(t, m.from.Filtered(), 6)

	view := m.View()
	testutil.AssertTrue(t, strings.Count(view, "\n") < m.height)
	testutil.AssertEqual(t, lipgloss.Height(view), m.height)

	// the last visible row is where a click lands
	lines := strings.Split(view, "\n")
	y := m.from.originY + 6
	testutil.AssertContains(t, lines[y], "Town 05")

	m, cmd := step(m, press(3, y))
	testutil.AssertEqual(t, m.from.Value(), "Town 05")
	testutil.AssertDiff(t, picks(drain(cmd)), []string{"Town 05"})
}

func TestModel_View_ShortTerminalWithFieldErrors(t *testing.T) {
	m := newTestModel(nil)
	m, _ = step(m, stationsLoadedMsg{gen: m.loadGen, stations: manyStations(12)})
	m, _ = step(m, tea.WindowSizeMsg{Width: 80, Height: 15})
	m.fieldErrs = map[string]string{"from": "Select a departure station from the list"}
	m.layout()

	testutil.AssertLen(t, m.from.Filtered(), 5)
	testutil.AssertEqual(t, lipgloss.Height(m.View()), m.height)
}

func TestModel_View_PickerRowsStartBelowInput(t *testing.T) {
	m := withStations(newTestModel(nil))

	lines := strings.Split(m.View(), "\n")
	testutil.AssertContains(t, lines[m.from.originY], "From:")
	testutil.AssertContains(t, lines[m.from.originY+1], "Mumbai")
	testutil.AssertContains(t, lines[m.to.originY], "To:")
}

func TestModel_View_WithTrains(t *testing.T) {
	m := newResultsModel(3)

	output := m.View()
	testutil.AssertContains(t, output, "3 found")
	testutil.AssertContains(t, output, "Train 1")
	testutil.AssertContains(t, output, "06:00 -> 14:30")
}

func TestModel_View_SearchError(t *testing.T) {
	m := newTestModel(nil)
	m.searched = true
	m.searchErr = errors.New("boom")

	testutil.AssertContains(t, m.View(), "Error: boom")
}

func TestRenderTrainLine(t *testing.T) {
	train := models.TrainResult{
		TrainNumber:           "12951",
		TrainName:             "Mumbai Rajdhani",
		DepartureTime:         "17:00:00",
		ArrivalTime:           "08:32:00",
		TravelDurationMinutes: 932,
		ClassOptions: []models.ClassOption{
			{CoachCode: "3A", Fare: 2870, AvailableSeats: 42},
			{CoachCode: "2A", Fare: 3995, Status: "WL"},
			{CoachCode: "1A", Fare: 4900, Status: "RAC"},
			{CoachCode: "EC", Fare: 5100},
		},
	}

	line := renderTrainLine(train, 120, false)
	testutil.AssertContains(t, line, "12951")
	testutil.AssertContains(t, line, "Mumbai Rajdhani")
	testutil.AssertContains(t, line, "17:00 -> 08:32")
	testutil.AssertContains(t, line, "15h 32m")
	testutil.AssertContains(t, line, "from ₹2870")
	testutil.AssertContains(t, line, "3A:42 2A:WL 1A:RAC EC:-")
	testutil.AssertFalse(t, strings.HasPrefix(line, ">"))

	selected := renderTrainLine(train, 120, true)
	testutil.AssertTrue(t, strings.HasPrefix(selected, ">"))
}

func TestRenderFieldErrors_Order(t *testing.T) {
	m := newTestModel(nil)
	m.fieldErrs = map[string]string{"date": "bad date", "from": "bad from"}

	out := m.renderFieldErrors()
	testutil.AssertTrue(t, strings.Index(out, "bad from") < strings.Index(out, "bad date"))
}

func TestRenderStatusBar(t *testing.T) {
	m := newTestModel(nil)

	for _, f := range []focusField{focusFrom, focusTo, focusDate, focusResults} {
		m.focus = f
		output := m.renderStatusBar()
		testutil.AssertTrue(t, len(output) > 0)
	}

	m.focus = focusDate
	testutil.AssertContains(t, m.renderStatusBar(), "Enter:search")
}

func TestRenderStatusBar_ShowsStatus(t *testing.T) {
	m := newTestModel(nil)
	m.status = "from: New Delhi (NDLS)"

	testutil.AssertContains(t, m.renderStatusBar(), "from: New Delhi (NDLS)")
}
