// Package stations supplies the candidate lists behind the station pickers.
//
// A Source produces stations from the backend, a local JSON file or the
// builtin catalogue. Loads are tagged with a generation by Loader so callers
// can drop a batch that was overtaken by a newer request.
package stations

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orrs-rail/orrs-cli/internal/logging"
	"github.com/orrs-rail/orrs-cli/internal/models"
)

// Source produces a station list.
type Source interface {
	Stations(ctx context.Context) ([]models.Station, error)
	Name() string
}

// Fetcher is the part of the API client a RemoteSource needs.
type Fetcher interface {
	GetStations(ctx context.Context) ([]models.Station, error)
}

// Invalidator is implemented by sources that hold on to an earlier result.
type Invalidator interface {
	Invalidate()
}

// invalidate forwards to src when it keeps state between loads.
func invalidate(src Source) {
	if inv, ok := src.(Invalidator); ok {
		inv.Invalidate()
	}
}

// RemoteSource loads stations from the backend.
type RemoteSource struct {
	Client Fetcher
}

// Stations implements Source.
func (s RemoteSource) Stations(ctx context.Context) ([]models.Station, error) {
	list, err := s.Client.GetStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}
	return list, nil
}

// Name implements Source.
func (RemoteSource) Name() string { return "remote" }

// Invalidate drops the client's cached response when it keeps one, so the
// next load reaches the backend.
func (s RemoteSource) Invalidate() {
	if c, ok := s.Client.(interface{ InvalidateStations() }); ok {
		c.InvalidateStations()
	}
}

// FileSource loads stations from a JSON file in the backend's wire format,
// either a bare array or the response envelope.
type FileSource struct {
	Path string
}

// Stations implements Source.
func (s FileSource) Stations(ctx context.Context) ([]models.Station, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stations file: %w", err)
	}

	resp, err := models.DecodeList[models.StationResponse](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stations file %s: %w", s.Path, err)
	}

	list := make([]models.Station, 0, len(resp))
	for i := range resp {
		list = append(list, *resp[i].ToStation())
	}
	return list, nil
}

// Name implements Source.
func (s FileSource) Name() string { return "file:" + s.Path }

// Combined loads several sources as one with FetchAll.
type Combined []Source

// Stations implements Source.
func (c Combined) Stations(ctx context.Context) ([]models.Station, error) {
	return FetchAll(ctx, c...)
}

// Invalidate forwards to every source that keeps state.
func (c Combined) Invalidate() {
	for _, src := range c {
		invalidate(src)
	}
}

// Name implements Source.
func (c Combined) Name() string {
	names := make([]string, len(c))
	for i, src := range c {
		names[i] = src.Name()
	}
	return strings.Join(names, "+")
}

// FetchAll loads every source concurrently and merges the results in source
// order. The first failure cancels the others.
func FetchAll(ctx context.Context, sources ...Source) ([]models.Station, error) {
	results := make([][]models.Station, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			list, err := src.Stations(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			logging.Debug("stations loaded", zap.String("source", src.Name()), zap.Int("count", len(list)))
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(results...), nil
}

// Merge concatenates station lists, keeping the first station seen for each
// code. Stations without a code are kept as they are.
func Merge(lists ...[]models.Station) []models.Station {
	var total int
	for _, l := range lists {
		total += len(l)
	}

	seen := make(map[string]struct{}, total)
	out := make([]models.Station, 0, total)
	for _, l := range lists {
		for _, s := range l {
			code := strings.ToUpper(s.Code)
			if code != "" {
				if _, dup := seen[code]; dup {
					continue
				}
				seen[code] = struct{}{}
			}
			out = append(out, s)
		}
	}
	return out
}
