package stations

import (
	"strings"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/suggest"
)

// Index resolves user-facing station text back to a Station.
type Index struct {
	list []models.Station
}

// NewIndex builds an index over list. The slice is not copied.
func NewIndex(list []models.Station) *Index {
	return &Index{list: list}
}

// Stations returns the indexed list.
func (ix *Index) Stations() []models.Station {
	return ix.list
}

// Len returns the number of indexed stations.
func (ix *Index) Len() int {
	return len(ix.list)
}

// Lookup finds the station for text. The display value wins, as the pickers
// confirm on it, then the station code, then the full station name. When
// several stations share a display value the first one is returned.
func (ix *Index) Lookup(text string) (models.Station, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Station{}, false
	}
	if s, ok := suggest.ExactMatch(text, ix.list); ok {
		return s, true
	}
	for _, s := range ix.list {
		if s.Code != "" && strings.EqualFold(s.Code, text) {
			return s, true
		}
	}
	for _, s := range ix.list {
		if s.Name != "" && strings.EqualFold(s.Name, text) {
			return s, true
		}
	}
	return models.Station{}, false
}

// ByKey finds a station by its Key.
func (ix *Index) ByKey(key string) (models.Station, bool) {
	for _, s := range ix.list {
		if s.Key() == key {
			return s, true
		}
	}
	return models.Station{}, false
}
