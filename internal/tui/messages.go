package tui

import (
	"github.com/orrs-rail/orrs-cli/internal/models"
)

// stationsLoadedMsg carries a station batch back to the model.
// gen is the load generation used for stale-batch detection.
type stationsLoadedMsg struct {
	gen      uint64
	stations []models.Station
	err      error
}

// stationsChangedMsg is sent when the watched stations file settled after a change.
type stationsChangedMsg struct{}

// stationPickedMsg is produced by a station picker on every confirmed selection.
type stationPickedMsg struct {
	field focusField
	value string
}

// trainsResultMsg carries train search results back to the model.
// seq is used for stale-result detection.
type trainsResultMsg struct {
	seq    int
	trains []models.TrainResult
	err    error
}
