package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/api"
	"github.com/orrs-rail/orrs-cli/internal/logging"
	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/stations"
	"github.com/orrs-rail/orrs-cli/internal/validate"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	// dropdowns push the fields below them down, so origins move with state
	nm.layout()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stationsLoadedMsg:
		return m.handleStationsLoaded(msg)

	case stationsChangedMsg:
		logging.Debug("stations file changed, reloading")
		return m, tea.Batch(m.reload(), waitForChange(m.changes))

	case stationPickedMsg:
		return m.handleStationPicked(msg)

	case trainsResultMsg:
		return m.handleTrainsResult(msg)

	case spinner.TickMsg:
		var c1, c2 tea.Cmd
		m.from, c1 = m.from.Update(msg)
		m.to, c2 = m.to.Update(msg)
		return m, tea.Batch(c1, c2)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages (cursor blink) to the focused input
	var cmd tea.Cmd
	switch m.focus {
	case focusFrom:
		m.from, cmd = m.from.Update(msg)
	case focusTo:
		m.to, cmd = m.to.Update(msg)
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

// reload starts a fresh station load; any batch still in flight goes stale.
func (m *Model) reload() tea.Cmd {
	if inv, ok := m.source.(stations.Invalidator); ok {
		inv.Invalidate()
	}
	spin := m.beginLoad()
	return tea.Batch(spin, loadStations(m.source, m.loadGen))
}

func (m Model) handleStationsLoaded(msg stationsLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore batches overtaken by a newer load
	if !m.loader.Accept(msg.gen) {
		logging.Debug("dropping stale station batch", zap.Uint64("gen", msg.gen), zap.Uint64("current", m.loader.Current()))
		return m, nil
	}

	m.stationsLoading = false
	m.from.SetLoading(false)
	m.to.SetLoading(false)

	m.stationsErr = msg.err
	if msg.err != nil {
		logging.Warn("station load failed", zap.Error(msg.err))
		m.from.SetError(msg.err)
		m.to.SetError(msg.err)
		m.status = describeError(msg.err)
		return m, nil
	}

	m.index = stations.NewIndex(msg.stations)
	m.from.SetCandidates(msg.stations)
	m.to.SetCandidates(msg.stations)
	m.fromStation = m.resolve(m.from)
	m.toStation = m.resolve(m.to)
	m.status = ""
	return m, nil
}

// resolve returns the station a picker currently holds, if its text is valid.
func (m Model) resolve(a Autocomplete[models.Station]) *models.Station {
	s, ok := a.Selection()
	if !ok {
		return nil
	}
	return &s
}

func (m Model) handleStationPicked(msg stationPickedMsg) (tea.Model, tea.Cmd) {
	p := m.picker(msg.field)
	if p == nil {
		return m, nil
	}

	// The picker reports only the display value; several stations may share
	// it, so prefer the picker's own selection and fall back to the index.
	s, ok := p.Selection()
	if !ok || s.DisplayValue() != msg.value {
		s, ok = m.index.Lookup(msg.value)
		if !ok {
			return m, nil
		}
	}

	switch msg.field {
	case focusFrom:
		m.fromStation = &s
	case focusTo:
		m.toStation = &s
	}
	delete(m.fieldErrs, msg.field.String())
	m.status = msg.field.String() + ": " + s.Label()
	return m, nil
}

func (m Model) handleTrainsResult(msg trainsResultMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results
	if msg.seq != m.searchSeq {
		return m, nil
	}
	m.searching = false
	m.searched = true
	m.trains = nil
	m.trainCursor = 0

	if errors.Is(msg.err, api.ErrNoResults) {
		m.searchErr = nil
		return m, nil
	}
	m.searchErr = msg.err
	if msg.err != nil {
		m.status = describeError(msg.err)
		return m, nil
	}

	m.trains = msg.trains
	m.setFocus(focusResults)
	return m, nil
}

// describeError turns a load or search failure into a status line.
func describeError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Session expired or not permitted: refresh the token in your config"
	case errors.Is(err, api.ErrTimeout):
		return "The server did not answer in time"
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Error: " + err.Error()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// A press inside an unfocused picker moves the focus there first
	switch {
	case m.focus != focusFrom && m.from.Contains(msg.X, msg.Y):
		m.setFocus(focusFrom)
	case m.focus != focusTo && m.to.Contains(msg.X, msg.Y):
		m.setFocus(focusTo)
	}

	var c1, c2 tea.Cmd
	m.from, c1 = m.from.Update(msg)
	m.to, c2 = m.to.Update(msg)
	return m, tea.Batch(c1, c2)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m, m.reload()
	case "ctrl+s":
		m.swap()
		return m, nil
	case "tab":
		m.setFocus(m.nextFocus(1))
		return m, m.focusCmd()
	case "shift+tab":
		m.setFocus(m.nextFocus(-1))
		return m, m.focusCmd()
	}

	switch m.focus {
	case focusFrom, focusTo:
		return m.handlePickerKeys(msg)
	case focusDate:
		return m.handleDateKeys(msg)
	case focusResults:
		return m.handleResultKeys(msg)
	}

	return m, nil
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker(m.focus)

	// Enter without a highlighted suggestion submits the form
	if msg.String() == "enter" && (!p.Open() || p.Highlight() < 0) {
		return m.submit()
	}

	var cmd tea.Cmd
	*p, cmd = p.Update(msg)
	return m, cmd
}

func (m Model) handleDateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "esc":
		m.dateInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	delete(m.fieldErrs, "date")
	return m, cmd
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Defensive clamp at start of handler to prevent out-of-bounds scroll
	if len(m.trains) > 0 {
		m.trainCursor = max(0, min(m.trainCursor, len(m.trains)-1))
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		m.setFocus(focusDate)
		return m, m.focusCmd()

	case "/":
		m.setFocus(focusFrom)
		return m, m.focusCmd()

	case "j", "down":
		if m.trainCursor < len(m.trains)-1 {
			m.trainCursor++
		}

	case "k", "up":
		if m.trainCursor > 0 {
			m.trainCursor--
		}

	case "pgdown":
		if len(m.trains) > 0 {
			m.trainCursor = min(m.trainCursor+m.pageSize(), len(m.trains)-1)
		}

	case "pgup":
		m.trainCursor = max(m.trainCursor-m.pageSize(), 0)

	case "home", "g":
		m.trainCursor = 0

	case "end", "G":
		if len(m.trains) > 0 {
			m.trainCursor = len(m.trains) - 1
		}
	}

	return m, nil
}

// pageSize is the number of result rows moved by pgup/pgdown.
func (m Model) pageSize() int {
	size := m.resultsHeight() - 1
	if size < 1 {
		return 10
	}
	return size
}

// nextFocus returns the field dir steps along the focus ring. The results
// list is part of the ring only when it has rows.
func (m Model) nextFocus(dir int) focusField {
	ring := []focusField{focusFrom, focusTo, focusDate}
	if len(m.trains) > 0 {
		ring = append(ring, focusResults)
	}
	idx := 0
	for i, f := range ring {
		if f == m.focus {
			idx = i
			break
		}
	}
	return ring[(idx+dir+len(ring))%len(ring)]
}

// setFocus moves keyboard focus to f. Leaving a picker closes its dropdown.
func (m *Model) setFocus(f focusField) {
	if m.focus == f {
		return
	}
	switch m.focus {
	case focusFrom:
		m.from.Blur()
	case focusTo:
		m.to.Blur()
	case focusDate:
		m.dateInput.Blur()
	}
	m.focus = f
	switch f {
	case focusFrom:
		m.from.Focus()
	case focusTo:
		m.to.Focus()
	case focusDate:
		m.dateInput.Focus()
	}
}

// focusCmd restarts cursor blinking after a focus change.
func (m Model) focusCmd() tea.Cmd {
	if m.focus == focusResults {
		return nil
	}
	return textinput.Blink
}

// swap exchanges the From and To texts and picks.
func (m *Model) swap() {
	fromText, toText := m.from.Value(), m.to.Value()
	m.from.SetValue(toText)
	m.to.SetValue(fromText)
	m.fromStation, m.toStation = m.toStation, m.fromStation
	delete(m.fieldErrs, "from")
	delete(m.fieldErrs, "to")
}

// searchInput collects the form for validation. Picks only count while the
// picker text still matches a station. The stations are named the way the
// request names them, so two stations of one city count as the same.
func (m Model) searchInput() validate.SearchInput {
	in := validate.SearchInput{Date: strings.TrimSpace(m.dateInput.Value())}
	if s := m.resolve(m.from); s != nil {
		in.From = s.DisplayValue()
	}
	if s := m.resolve(m.to); s != nil {
		in.To = s.DisplayValue()
	}
	return in
}

// submit validates the form and starts a search. An invalid form is never sent.
func (m Model) submit() (tea.Model, tea.Cmd) {
	in := m.searchInput()
	if err := m.validator.Search(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			m.fieldErrs = fe
			m.status = "Please fix the highlighted fields"
		} else {
			m.status = err.Error()
		}
		return m, nil
	}

	date, _ := validate.ParseDate(in.Date)
	req := models.SearchRequest{
		FromStation: in.From,
		ToStation:   in.To,
		JourneyDate: validate.FormatDate(date),
	}

	m.fieldErrs = nil
	m.status = ""
	m.searchSeq++
	m.searching = true
	m.searchErr = nil
	logging.Info("searching trains", zap.String("from", req.FromStation), zap.String("to", req.ToStation), zap.String("date", req.JourneyDate))
	return m, searchTrains(m.client, req, m.searchSeq)
}
