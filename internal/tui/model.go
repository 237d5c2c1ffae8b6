package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/stations"
	"github.com/orrs-rail/orrs-cli/internal/validate"
)

type focusField int

const (
	focusFrom focusField = iota
	focusTo
	focusDate
	focusResults
)

func (f focusField) String() string {
	switch f {
	case focusFrom:
		return "from"
	case focusTo:
		return "to"
	case focusDate:
		return "date"
	}
	return "results"
}

// TrainSearcher runs train schedule searches. *api.Client implements it.
type TrainSearcher interface {
	SearchTrains(ctx context.Context, req models.SearchRequest) ([]models.TrainResult, error)
}

// Options configures New.
type Options struct {
	// Client runs searches. Required.
	Client TrainSearcher
	// Source supplies the picker candidates. Defaults to the builtin catalogue.
	Source stations.Source
	// Changes triggers a reload of Source on every receive.
	Changes <-chan struct{}
	// Limit caps the suggestions per picker.
	Limit int
	// Now supplies "today" for the journey date check.
	Now func() time.Time
}

// Model is the root Bubble Tea model for the TUI: a train search form with
// two station pickers, a journey date and a results list.
type Model struct {
	client    TrainSearcher
	source    stations.Source
	changes   <-chan struct{}
	loader    *stations.Loader
	index     *stations.Index
	validator *validate.Validator
	now       func() time.Time

	width  int
	height int
	focus  focusField

	from      Autocomplete[models.Station]
	to        Autocomplete[models.Station]
	dateInput textinput.Model

	// station load in flight
	loadGen         uint64
	stationsLoading bool
	stationsErr     error

	// last confirmed picks, resolved through the index
	fromStation *models.Station
	toStation   *models.Station

	// form feedback
	fieldErrs validate.FieldErrors
	status    string

	// results
	trains      []models.TrainResult
	trainCursor int
	searching   bool
	searchErr   error
	searched    bool
	searchSeq   int
}

// New creates a new TUI model. The first station load is started by Init.
func New(opts Options) Model {
	src := opts.Source
	if src == nil {
		src = stations.BuiltinSource{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	from := NewAutocomplete[models.Station]("From:", "Departure city or station code").
		WithLimit(opts.Limit).
		WithOnChange(pickedMsg(focusFrom))
	to := NewAutocomplete[models.Station]("To:  ", "Destination city or station code").
		WithLimit(opts.Limit).
		WithOnChange(pickedMsg(focusTo))

	di := textinput.New()
	di.Placeholder = "DD/MM/YYYY"
	di.CharLimit = 10
	di.Width = 12
	di.Prompt = ""
	di.SetValue(now().Format("02/01/2006"))

	m := Model{
		client:    opts.Client,
		source:    src,
		changes:   opts.Changes,
		loader:    &stations.Loader{},
		index:     stations.NewIndex(nil),
		validator: validate.New(now),
		now:       now,
		focus:     focusFrom,
		from:      from,
		to:        to,
		dateInput: di,
	}
	m.from.Focus()
	m.beginLoad()
	return m
}

// beginLoad starts a new load generation and puts both pickers in the
// loading state.
func (m *Model) beginLoad() tea.Cmd {
	m.loadGen = m.loader.Begin()
	m.stationsLoading = true
	m.stationsErr = nil
	m.from.SetError(nil)
	m.to.SetError(nil)
	return tea.Batch(m.from.SetLoading(true), m.to.SetLoading(true))
}

// Init starts the first station load and the watcher subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.from.Init(),
		m.to.Init(),
		loadStations(m.source, m.loadGen),
		waitForChange(m.changes),
	)
}

// picker returns the station picker for field, or nil.
func (m *Model) picker(field focusField) *Autocomplete[models.Station] {
	switch field {
	case focusFrom:
		return &m.from
	case focusTo:
		return &m.to
	}
	return nil
}
