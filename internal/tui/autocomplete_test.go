package tui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/testutil"
)

func testStations() []models.Station {
	return []models.Station{
		{ID: 1, Code: "CSMT", Name: "Chhatrapati Shivaji Maharaj Terminus", City: "Mumbai"},
		{ID: 2, Code: "BCT", Name: "Mumbai Central", City: "Mumbai"},
		{ID: 3, Code: "NDLS", Name: "New Delhi", City: "Delhi"},
		{ID: 4, Code: "MAS", Name: "Chennai Central", City: "Chennai"},
		{ID: 5, Code: "HWH", Name: "Howrah Junction", City: "Howrah"},
	}
}

func newTestPicker() Autocomplete[models.Station] {
	a := NewAutocomplete[models.Station]("From:", "city").
		WithOnChange(pickedMsg(focusFrom))
	// a static cursor keeps typing from scheduling blink timers
	a.input.Cursor.SetMode(cursor.CursorStatic)
	a.SetCandidates(testStations())
	a.SetOrigin(0, 2)
	a.Focus()
	return a
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// drain runs cmd and any batched commands, returning the messages produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// picks returns the values of the station picks among msgs.
func picks(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if p, ok := msg.(stationPickedMsg); ok {
			out = append(out, p.value)
		}
	}
	return out
}

func typeText(a Autocomplete[models.Station], s string) (Autocomplete[models.Station], []string) {
	var msgs []tea.Msg
	for _, r := range s {
		var cmd tea.Cmd
		a, cmd = a.Update(keyRune(r))
		msgs = append(msgs, drain(cmd)...)
	}
	return a, picks(msgs)
}

func sendKey(a Autocomplete[models.Station], msg tea.Msg) (Autocomplete[models.Station], []string) {
	a, cmd := a.Update(msg)
	return a, picks(drain(cmd))
}

func TestAutocomplete_New(t *testing.T) {
	a := NewAutocomplete[models.Station]("From:", "city")

	testutil.AssertEqual(t, a.State(), StateClosed)
	testutil.AssertEqual(t, a.Highlight(), -1)
	testutil.AssertFalse(t, a.Valid())
	testutil.AssertFalse(t, a.Focused())
	testutil.AssertTrue(t, a.Init() == nil)
}

func TestAutocomplete_FocusOpens(t *testing.T) {
	a := newTestPicker()

	testutil.AssertTrue(t, a.Focused())
	testutil.AssertEqual(t, a.State(), StateOpenList)
	testutil.AssertLen(t, a.Filtered(), 5)
	testutil.AssertEqual(t, a.Highlight(), -1)
}

func TestAutocomplete_ExactMatchNotifiesOnce(t *testing.T) {
	a := newTestPicker()

	a, got := typeText(a, "mumbai")
	testutil.AssertTrue(t, a.Valid())
	testutil.AssertLen(t, got, 1)
	testutil.AssertEqual(t, got[0], "Mumbai")

	s, ok := a.Selection()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, s.Code, "CSMT")
}

func TestAutocomplete_FurtherTypingInvalidates(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "Delhi")
	testutil.AssertTrue(t, a.Valid())

	a, got := typeText(a, "x")
	testutil.AssertFalse(t, a.Valid())
	testutil.AssertLen(t, got, 0)
	_, ok := a.Selection()
	testutil.AssertFalse(t, ok)

	// Deleting the extra character matches again and notifies again
	a, got = sendKey(a, keyType(tea.KeyBackspace))
	testutil.AssertTrue(t, a.Valid())
	testutil.AssertLen(t, got, 1)
	testutil.AssertEqual(t, got[0], "Delhi")
}

func TestAutocomplete_FilterNarrows(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "del")

	testutil.AssertEqual(t, a.State(), StateOpenList)
	testutil.AssertLen(t, a.Filtered(), 1)
	testutil.AssertEqual(t, a.Filtered()[0].Code, "NDLS")
	testutil.AssertFalse(t, a.Valid())
}

func TestAutocomplete_NoMatches(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "zzz")

	testutil.AssertEqual(t, a.State(), StateOpenEmpty)
	testutil.AssertContains(t, a.View(), "No stations found")
	testutil.AssertEqual(t, a.height(), 2)
}

func TestAutocomplete_ArrowKeysWrap(t *testing.T) {
	tests := []struct {
		name  string
		start int
		key   tea.KeyType
		want  int
	}{
		{"down from none", -1, tea.KeyDown, 0},
		{"down moves", 1, tea.KeyDown, 2},
		{"down from last wraps", 4, tea.KeyDown, 0},
		{"up from first wraps", 0, tea.KeyUp, 4},
		{"up from none wraps", -1, tea.KeyUp, 4},
		{"up moves", 3, tea.KeyUp, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestPicker()
			a.highlight = tt.start

			a, _ = sendKey(a, keyType(tt.key))
			testutil.AssertEqual(t, a.Highlight(), tt.want)
		})
	}
}

func TestAutocomplete_ArrowReopensClosedList(t *testing.T) {
	a := newTestPicker()
	a, _ = sendKey(a, keyType(tea.KeyEsc))
	testutil.AssertEqual(t, a.State(), StateClosed)

	a, _ = sendKey(a, keyType(tea.KeyDown))
	testutil.AssertEqual(t, a.State(), StateOpenList)
	testutil.AssertEqual(t, a.Highlight(), -1)
}

func TestAutocomplete_EscKeepsTextAndValidity(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "Howrah")
	testutil.AssertTrue(t, a.Valid())

	a, got := sendKey(a, keyType(tea.KeyEsc))
	testutil.AssertEqual(t, a.State(), StateClosed)
	testutil.AssertEqual(t, a.Value(), "Howrah")
	testutil.AssertTrue(t, a.Valid())
	testutil.AssertLen(t, got, 0)

	// invalid text stays invalid
	a, _ = typeText(a, "z")
	a, _ = sendKey(a, keyType(tea.KeyEsc))
	testutil.AssertEqual(t, a.Value(), "Howrahz")
	testutil.AssertFalse(t, a.Valid())
}

func TestAutocomplete_EnterCommitsHighlight(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "ch")
	testutil.AssertLen(t, a.Filtered(), 2) // CSMT by name, MAS by city

	a, _ = sendKey(a, keyType(tea.KeyDown))
	a, _ = sendKey(a, keyType(tea.KeyDown))
	a, got := sendKey(a, keyType(tea.KeyEnter))

	testutil.AssertEqual(t, a.Value(), "Chennai")
	testutil.AssertTrue(t, a.Valid())
	testutil.AssertEqual(t, a.State(), StateClosed)
	testutil.AssertLen(t, got, 1)
	testutil.AssertEqual(t, got[0], "Chennai")

	s, _ := a.Selection()
	testutil.AssertEqual(t, s.Code, "MAS")
}

func TestAutocomplete_EnterWithoutHighlightIsNoop(t *testing.T) {
	a := newTestPicker()
	a, got := sendKey(a, keyType(tea.KeyEnter))

	testutil.AssertEqual(t, a.State(), StateOpenList)
	testutil.AssertEqual(t, a.Value(), "")
	testutil.AssertLen(t, got, 0)
}

func TestAutocomplete_ClickRowCommits(t *testing.T) {
	a := newTestPicker()

	// input line at y=2, rows start at y=3; y=4 is the second row
	a, got := sendKey(a, press(5, 4))

	testutil.AssertEqual(t, a.Value(), "Mumbai")
	testutil.AssertEqual(t, a.State(), StateClosed)
	testutil.AssertLen(t, got, 1)
	s, ok := a.Selection()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, s.Code, "BCT")
}

func TestAutocomplete_ClickOutsideCloses(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "Del")

	a, got := sendKey(a, press(5, 30))
	testutil.AssertEqual(t, a.State(), StateClosed)
	testutil.AssertEqual(t, a.Value(), "Del")
	testutil.AssertLen(t, got, 0)
}

func TestAutocomplete_ClickOnInputKeepsOpen(t *testing.T) {
	a := newTestPicker()

	a, got := sendKey(a, press(5, 2))
	testutil.AssertEqual(t, a.State(), StateOpenList)
	testutil.AssertLen(t, got, 0)
}

func TestAutocomplete_IgnoresOtherMouseEvents(t *testing.T) {
	a := newTestPicker()

	a, _ = sendKey(a, tea.MouseMsg{X: 5, Y: 30, Action: tea.MouseActionMotion})
	testutil.AssertEqual(t, a.State(), StateOpenList)
}

func TestAutocomplete_Contains(t *testing.T) {
	a := newTestPicker()
	a.SetWidth(30)

	testutil.AssertTrue(t, a.Contains(0, 2))
	testutil.AssertTrue(t, a.Contains(29, 7)) // last of five rows
	testutil.AssertFalse(t, a.Contains(30, 2))
	testutil.AssertFalse(t, a.Contains(0, 8))
	testutil.AssertFalse(t, a.Contains(0, 1))

	a.Blur()
	testutil.AssertFalse(t, a.Contains(0, 3))
}

func TestAutocomplete_Loading(t *testing.T) {
	a := newTestPicker()
	cmd := a.SetLoading(true)
	testutil.AssertTrue(t, cmd != nil)

	testutil.AssertTrue(t, a.Loading())
	testutil.AssertContains(t, a.View(), "Loading stations...")
	testutil.AssertEqual(t, a.height(), 2)

	// rows are not clickable while loading
	a, got := sendKey(a, press(5, 3))
	testutil.AssertLen(t, got, 0)
	testutil.AssertEqual(t, a.Value(), "")

	// loading wins over a previous error
	a.SetError(errors.New("boom"))
	testutil.AssertNotContains(t, a.View(), "Failed to load stations")

	testutil.AssertTrue(t, a.SetLoading(false) == nil)
	testutil.AssertContains(t, a.View(), "Failed to load stations")
}

func TestAutocomplete_PlaceholderIgnoresNavigation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *Autocomplete[models.Station])
	}{
		{"loading", func(a *Autocomplete[models.Station]) { a.SetLoading(true) }},
		{"error", func(a *Autocomplete[models.Station]) { a.SetError(errors.New("boom")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestPicker()
			a, _ = sendKey(a, keyType(tea.KeyDown))
			testutil.AssertEqual(t, a.Highlight(), 0)

			tt.setup(&a)
			testutil.AssertEqual(t, a.Highlight(), -1)

			a, _ = sendKey(a, keyType(tea.KeyDown))
			a, _ = sendKey(a, keyType(tea.KeyUp))
			testutil.AssertEqual(t, a.Highlight(), -1)

			a, got := sendKey(a, keyType(tea.KeyEnter))
			testutil.AssertLen(t, got, 0)
			testutil.AssertEqual(t, a.Value(), "")
			testutil.AssertFalse(t, a.Valid())
		})
	}
}

func TestAutocomplete_SpinnerTickIgnoredWhenIdle(t *testing.T) {
	a := newTestPicker()
	tick := a.spinner.Tick()

	_, cmd := a.Update(tick)
	testutil.AssertTrue(t, cmd == nil)
}

func TestAutocomplete_SetCandidatesRevalidates(t *testing.T) {
	a := newTestPicker()
	a, _ = typeText(a, "Pune")
	testutil.AssertFalse(t, a.Valid())

	list := append(testStations(), models.Station{ID: 6, Code: "PUNE", Name: "Pune Junction", City: "Pune"})
	a.SetCandidates(list)
	testutil.AssertTrue(t, a.Valid())
	s, _ := a.Selection()
	testutil.AssertEqual(t, s.Code, "PUNE")

	a.SetCandidates(testStations())
	testutil.AssertFalse(t, a.Valid())
}

func TestAutocomplete_SetValue(t *testing.T) {
	a := newTestPicker()

	a.SetValue("chennai")
	testutil.AssertTrue(t, a.Valid())
	testutil.AssertEqual(t, a.Value(), "chennai")

	a.SetValue("Chen")
	testutil.AssertFalse(t, a.Valid())
	testutil.AssertLen(t, a.Filtered(), 1)
}

func TestAutocomplete_WithLimit(t *testing.T) {
	a := NewAutocomplete[models.Station]("To:", "").WithLimit(2)
	a.SetCandidates(testStations())
	a.Focus()

	testutil.AssertLen(t, a.Filtered(), 2)
	testutil.AssertEqual(t, a.height(), 3)
}

func TestAutocomplete_UnfocusedIgnoresKeys(t *testing.T) {
	a := newTestPicker()
	a.Blur()

	a, got := typeText(a, "Delhi")
	testutil.AssertEqual(t, a.Value(), "")
	testutil.AssertLen(t, got, 0)
	testutil.AssertEqual(t, a.State(), StateClosed)
}

func TestAutocomplete_ViewRows(t *testing.T) {
	a := newTestPicker()
	a.highlight = 1

	view := a.View()
	testutil.AssertContains(t, view, "From:")
	testutil.AssertContains(t, view, "> Mumbai")
	testutil.AssertContains(t, view, "Mumbai Central (BCT)")
	testutil.AssertContains(t, view, "  Delhi")
}

func TestAutocompleteState_String(t *testing.T) {
	testutil.AssertEqual(t, StateClosed.String(), "closed")
	testutil.AssertEqual(t, StateOpenEmpty.String(), "open-empty")
	testutil.AssertEqual(t, StateOpenList.String(), "open-list")
}
