package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orrs-rail/orrs-cli/internal/suggest"
)

// AutocompleteState is the dropdown state of an Autocomplete.
type AutocompleteState int

const (
	StateClosed AutocompleteState = iota
	StateOpenEmpty
	StateOpenList
)

func (s AutocompleteState) String() string {
	switch s {
	case StateOpenEmpty:
		return "open-empty"
	case StateOpenList:
		return "open-list"
	}
	return "closed"
}

const defaultAutocompleteWidth = 40

// labeler is implemented by candidates that have a secondary line, such as a
// station name next to its city.
type labeler interface {
	Label() string
}

// Autocomplete is a text input with a filtered dropdown of candidates.
//
// Typing re-runs suggest.Filter over the candidate list. Text that equals a
// candidate's display value case-insensitively marks the selection valid;
// otherwise the consumer must treat the text as no selection. Every confirmed
// selection is reported once through the OnChange message.
type Autocomplete[C suggest.Candidate] struct {
	input   textinput.Model
	spinner spinner.Model
	label   string

	candidates []C
	filtered   []C
	highlight  int
	open       bool
	focused    bool

	selection C
	valid     bool

	loading bool
	err     error

	limit    int
	maxRows  int
	width    int
	onChange func(value string) tea.Msg

	// top-left cell where the consumer drew the control
	originX, originY int
}

// NewAutocomplete creates a closed, unfocused control.
func NewAutocomplete[C suggest.Candidate](label, placeholder string) Autocomplete[C] {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = ""

	return Autocomplete[C]{
		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleLoading)),
		label:     label,
		highlight: -1,
		limit:     suggest.DefaultLimit,
		width:     defaultAutocompleteWidth,
	}
}

// WithLimit sets the maximum number of suggestions shown.
func (a Autocomplete[C]) WithLimit(n int) Autocomplete[C] {
	if n > 0 {
		a.limit = n
	}
	return a
}

// WithOnChange sets the message produced for every confirmed selection. It
// receives the display value of the chosen candidate.
func (a Autocomplete[C]) WithOnChange(fn func(value string) tea.Msg) Autocomplete[C] {
	a.onChange = fn
	return a
}

// Init starts the spinner when the control begins in the loading state.
func (a Autocomplete[C]) Init() tea.Cmd {
	if a.loading {
		return a.spinner.Tick
	}
	return nil
}

// SetWidth sets the width of the input and dropdown rows.
func (a *Autocomplete[C]) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	a.width = w
	a.input.Width = max(w-lipgloss.Width(a.label)-1, 1)
}

// SetMaxRows caps the dropdown at n rows so it fits the screen. Zero or less
// means one row.
func (a *Autocomplete[C]) SetMaxRows(n int) {
	n = max(n, 1)
	if n == a.maxRows {
		return
	}
	a.maxRows = n
	hl := a.highlight
	a.refilter()
	if hl < len(a.filtered) {
		a.highlight = hl
	}
}

// SetOrigin records where the control is drawn so mouse presses can be hit-tested.
func (a *Autocomplete[C]) SetOrigin(x, y int) {
	a.originX, a.originY = x, y
}

// Focus focuses the input and opens the dropdown.
func (a *Autocomplete[C]) Focus() tea.Cmd {
	a.focused = true
	a.openList()
	return a.input.Focus()
}

// Blur removes focus and closes the dropdown, as a click outside would.
func (a *Autocomplete[C]) Blur() {
	a.focused = false
	a.input.Blur()
	a.close()
}

// Focused reports whether the control has keyboard focus.
func (a Autocomplete[C]) Focused() bool {
	return a.focused
}

// SetCandidates replaces the candidate list. Validity of the current text is
// recomputed against the new list without notifying the consumer.
func (a *Autocomplete[C]) SetCandidates(candidates []C) {
	a.candidates = candidates
	a.refilter()
	a.matchExact()
}

// SetLoading switches the loading placeholder on or off. The returned command
// drives the spinner.
func (a *Autocomplete[C]) SetLoading(loading bool) tea.Cmd {
	a.loading = loading
	if loading {
		a.highlight = -1
		return a.spinner.Tick
	}
	return nil
}

// SetError shows the load failure placeholder; nil clears it.
func (a *Autocomplete[C]) SetError(err error) {
	a.err = err
	if err != nil {
		a.highlight = -1
	}
}

// SetValue places text in the input. The selection is recomputed by exact
// match but the consumer is not notified.
func (a *Autocomplete[C]) SetValue(text string) {
	a.input.SetValue(text)
	a.input.CursorEnd()
	a.refilter()
	a.matchExact()
}

// State reports the dropdown state.
func (a Autocomplete[C]) State() AutocompleteState {
	switch {
	case !a.open:
		return StateClosed
	case len(a.filtered) == 0:
		return StateOpenEmpty
	}
	return StateOpenList
}

// Open reports whether the dropdown is shown.
func (a Autocomplete[C]) Open() bool { return a.open }

// Value returns the typed text.
func (a Autocomplete[C]) Value() string { return a.input.Value() }

// Valid reports whether the text matches a candidate.
func (a Autocomplete[C]) Valid() bool { return a.valid }

// Highlight returns the highlighted row, or -1.
func (a Autocomplete[C]) Highlight() int { return a.highlight }

// Filtered returns the suggestions currently offered.
func (a Autocomplete[C]) Filtered() []C { return a.filtered }

// Loading reports whether the loading placeholder is shown.
func (a Autocomplete[C]) Loading() bool { return a.loading }

// Err returns the load error shown, if any.
func (a Autocomplete[C]) Err() error { return a.err }

// Selection returns the selected candidate. ok is false while the text does
// not match any candidate.
func (a Autocomplete[C]) Selection() (c C, ok bool) {
	if !a.valid {
		return c, false
	}
	return a.selection, true
}

// Update handles keys while focused, mouse presses and spinner ticks.
func (a Autocomplete[C]) Update(msg tea.Msg) (Autocomplete[C], tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if !a.focused {
			return a, nil
		}
		return a.handleKey(msg)
	}

	if a.focused {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a Autocomplete[C]) handleKey(msg tea.KeyMsg) (Autocomplete[C], tea.Cmd) {
	switch msg.String() {
	case "down", "ctrl+n":
		if !a.open {
			a.openList()
			return a, nil
		}
		if n := len(a.filtered); n > 0 && !a.placeholder() {
			a.highlight = (a.highlight + 1) % n
		}
		return a, nil

	case "up", "ctrl+p":
		if !a.open {
			a.openList()
			return a, nil
		}
		if n := len(a.filtered); n > 0 && !a.placeholder() {
			if a.highlight <= 0 {
				a.highlight = n - 1
			} else {
				a.highlight--
			}
		}
		return a, nil

	case "enter":
		if a.open && !a.placeholder() && a.highlight >= 0 && a.highlight < len(a.filtered) {
			return a.commit(a.highlight)
		}
		return a, nil

	case "esc":
		a.close()
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.textChanged())
}

func (a Autocomplete[C]) handleMouse(msg tea.MouseMsg) (Autocomplete[C], tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}
	if !a.Contains(msg.X, msg.Y) {
		if a.open {
			a.close()
		}
		return a, nil
	}
	if row := a.rowAt(msg.Y); row >= 0 {
		return a.commit(row)
	}
	return a, nil
}

// Contains reports whether the cell x, y lies inside the input line or the dropdown.
func (a Autocomplete[C]) Contains(x, y int) bool {
	return x >= a.originX && x < a.originX+a.width &&
		y >= a.originY && y < a.originY+a.height()
}

// rowAt returns the suggestion drawn on screen line y, or -1.
func (a Autocomplete[C]) rowAt(y int) int {
	if !a.open || a.placeholder() {
		return -1
	}
	row := y - a.originY - 1
	if row < 0 || row >= len(a.filtered) {
		return -1
	}
	return row
}

// placeholder reports whether a loading or error row replaces the list.
func (a Autocomplete[C]) placeholder() bool {
	return a.loading || a.err != nil
}

// height is the number of screen lines the control occupies.
func (a Autocomplete[C]) height() int {
	if !a.open {
		return 1
	}
	if a.placeholder() || len(a.filtered) == 0 {
		return 2
	}
	return 1 + len(a.filtered)
}

// textChanged runs after every edit of the input text.
func (a *Autocomplete[C]) textChanged() tea.Cmd {
	a.open = true
	a.refilter()
	a.valid = false
	if c, ok := suggest.ExactMatch(a.input.Value(), a.candidates); ok {
		a.selection = c
		a.valid = true
		return a.notify(c.DisplayValue())
	}
	return nil
}

func (a Autocomplete[C]) commit(i int) (Autocomplete[C], tea.Cmd) {
	c := a.filtered[i]
	a.input.SetValue(c.DisplayValue())
	a.input.CursorEnd()
	a.selection = c
	a.valid = true
	a.close()
	a.refilter()
	return a, a.notify(c.DisplayValue())
}

func (a *Autocomplete[C]) notify(value string) tea.Cmd {
	if a.onChange == nil {
		return nil
	}
	fn := a.onChange
	return func() tea.Msg { return fn(value) }
}

func (a *Autocomplete[C]) openList() {
	a.open = true
	a.refilter()
}

func (a *Autocomplete[C]) close() {
	a.open = false
	a.highlight = -1
}

func (a *Autocomplete[C]) refilter() {
	limit := a.limit
	if a.maxRows > 0 {
		limit = min(limit, a.maxRows)
	}
	a.filtered = suggest.Filter(a.input.Value(), a.candidates, limit)
	a.highlight = -1
}

func (a *Autocomplete[C]) matchExact() {
	a.valid = false
	if c, ok := suggest.ExactMatch(a.input.Value(), a.candidates); ok {
		a.selection = c
		a.valid = true
	}
}

// View renders the input line and, when open, the dropdown below it.
func (a Autocomplete[C]) View() string {
	in := a.input
	if strings.TrimSpace(in.Value()) != "" && !a.valid {
		in.TextStyle = styleError
	}

	labelStyle := styleMuted
	if a.focused {
		labelStyle = styleHeader
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(a.label))
	b.WriteString(" ")
	b.WriteString(in.View())

	if !a.open {
		return b.String()
	}

	b.WriteString("\n")
	switch {
	case a.loading:
		b.WriteString("  " + a.spinner.View() + styleLoading.Render(" Loading stations..."))
	case a.err != nil:
		b.WriteString(styleError.Render("  Failed to load stations"))
	case len(a.filtered) == 0:
		b.WriteString(styleMuted.Render("  No stations found"))
	default:
		for i, c := range a.filtered {
			b.WriteString(a.renderRow(c, i == a.highlight))
			if i < len(a.filtered)-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (a Autocomplete[C]) renderRow(c C, highlighted bool) string {
	value := c.DisplayValue()
	var secondary string
	if l, ok := any(c).(labeler); ok {
		if s := l.Label(); s != "" && !strings.EqualFold(s, value) {
			secondary = s
		}
	}

	avail := a.width - 4
	value = truncate(value, avail)
	if secondary != "" {
		secondary = truncate(secondary, avail-len(value)-2)
	}

	if highlighted {
		line := styleSelected.Render("> " + value)
		if secondary != "" {
			line += "  " + styleSelected.Render(secondary)
		}
		return line
	}
	line := "  " + value
	if secondary != "" {
		line += "  " + styleMuted.Render(secondary)
	}
	return line
}
