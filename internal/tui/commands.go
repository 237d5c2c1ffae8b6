package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/stations"
)

const apiTimeout = 10 * time.Second

// loadStations returns a tea.Cmd that loads the candidate stations.
func loadStations(src stations.Source, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		list, err := src.Stations(ctx)
		return stationsLoadedMsg{
			gen:      gen,
			stations: list,
			err:      err,
		}
	}
}

// waitForChange returns a tea.Cmd that blocks until the stations file changed.
// It yields nothing once the watcher stopped.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stationsChangedMsg{}
	}
}

// searchTrains returns a tea.Cmd that searches schedules.
func searchTrains(client TrainSearcher, req models.SearchRequest, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		trains, err := client.SearchTrains(ctx, req)
		return trainsResultMsg{
			seq:    seq,
			trains: trains,
			err:    err,
		}
	}
}

// pickedMsg builds the OnChange message of the picker for field.
func pickedMsg(field focusField) func(string) tea.Msg {
	return func(value string) tea.Msg {
		return stationPickedMsg{field: field, value: value}
	}
}
