package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orrs-rail/orrs-cli/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors
	// ShowID adds the station ID column used by the admin commands.
	ShowID bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderStations renders stations as a formatted table
func RenderStations(w io.Writer, list []models.Station, opts TableOptions) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}

	c := opts.colors()
	for _, s := range list {
		// Code (fixed 6-char width)
		code := c.Code("%-6s", truncate(s.Code, 6))

		// City (fixed 14-char width)
		city := fmt.Sprintf("%-14s", truncate(s.DisplayValue(), 14))

		line := fmt.Sprintf("%s %s %s", code, city, c.Muted("%s", s.Name))
		if opts.ShowID {
			line = fmt.Sprintf("%s %s %s", c.Muted("%5d", s.ID), c.FormatStatus(s), line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// RenderTrains renders train search results, one train per line followed by
// its class availability.
func RenderTrains(w io.Writer, trains []models.TrainResult, opts TableOptions) {
	if len(trains) == 0 {
		_, _ = fmt.Fprintln(w, "No trains found.")
		return
	}

	c := opts.colors()
	for _, t := range trains {
		// Train number and name (name truncated/padded to 24 chars)
		number := c.Train("%-6s", t.TrainNumber)
		name := fmt.Sprintf("%-24s", truncate(t.TrainName, 24))

		duration := fmt.Sprintf("%7s", FormatDuration(t.Duration()))

		_, _ = fmt.Fprintf(w, "%s %s %s -> %s  %s",
			number,
			name,
			c.Time("%s", t.Departure()),
			c.Time("%s", t.Arrival()),
			c.Muted("%s", duration),
		)
		if f := t.CheapestFare(); f > 0 {
			_, _ = fmt.Fprintf(w, "  %s", c.Fare("from %s", FormatFare(f)))
		}
		_, _ = fmt.Fprintln(w)

		if len(t.ClassOptions) > 0 {
			classes := make([]string, 0, len(t.ClassOptions))
			for _, opt := range t.ClassOptions {
				classes = append(classes, c.FormatAvailability(opt))
			}
			_, _ = fmt.Fprintf(w, "       %s\n", strings.Join(classes, "  "))
		}
	}
}

// RenderFieldErrors renders form errors sorted by field name.
func RenderFieldErrors(w io.Writer, errs map[string]string, opts TableOptions) {
	c := opts.colors()
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Error("%s:", f), errs[f])
	}
}

// RenderMessage renders the outcome of a mutating call, similar to a toast.
func RenderMessage(w io.Writer, ok bool, text string, opts TableOptions) {
	c := opts.colors()
	if ok {
		_, _ = fmt.Fprintln(w, c.Success("%s", text))
		return
	}
	_, _ = fmt.Fprintln(w, c.Error("%s", text))
}

// FormatDuration formats a travel time as "16h 35m" or "45m".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// FormatFare formats a fare in rupees, dropping the paise when they are zero.
func FormatFare(f float64) string {
	if f == float64(int64(f)) {
		return "₹" + strconv.FormatInt(int64(f), 10)
	}
	return "₹" + strconv.FormatFloat(f, 'f', 2, 64)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "~"
}
