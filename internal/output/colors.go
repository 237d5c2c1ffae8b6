package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/orrs-rail/orrs-cli/internal/models"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Time      func(format string, a ...interface{}) string
	Train     func(format string, a ...interface{}) string
	Code      func(format string, a ...interface{}) string
	Fare      func(format string, a ...interface{}) string
	Available func(format string, a ...interface{}) string
	Waitlist  func(format string, a ...interface{}) string
	Inactive  func(format string, a ...interface{}) string
	Success   func(format string, a ...interface{}) string
	Error     func(format string, a ...interface{}) string
	Header    func(format string, a ...interface{}) string
	Muted     func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Time:      noColor,
			Train:     noColor,
			Code:      noColor,
			Fare:      noColor,
			Available: noColor,
			Waitlist:  noColor,
			Inactive:  noColor,
			Success:   noColor,
			Error:     noColor,
			Header:    noColor,
			Muted:     noColor,
		}
	}

	return &Colors{
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Train:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Code:      color.New(color.FgCyan).SprintfFunc(),
		Fare:      color.New(color.FgMagenta).SprintfFunc(),
		Available: color.New(color.FgGreen).SprintfFunc(),
		Waitlist:  color.New(color.FgYellow).SprintfFunc(),
		Inactive:  color.New(color.FgRed).SprintfFunc(),
		Success:   color.New(color.FgGreen, color.Bold).SprintfFunc(),
		Error:     color.New(color.FgRed, color.Bold).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// FormatStatus formats a station status with a fixed 8-char width.
// Stations whose activity flags disagree are marked with "!".
func (c *Colors) FormatStatus(s models.Station) string {
	status := s.Status
	if status == "" {
		status = "-"
	}
	mark := " "
	if s.Inconsistent() {
		mark = "!"
	}
	cell := padRight(status, 8) + mark
	if status == models.StatusInactive {
		return c.Inactive("%s", cell)
	}
	return c.Available("%s", cell)
}

// FormatAvailability formats a class as "CODE:seats", "CODE:WL" or "CODE:RAC".
func (c *Colors) FormatAvailability(opt models.ClassOption) string {
	switch strings.ToUpper(opt.Status) {
	case "WL":
		return c.Waitlist("%s:WL", opt.CoachCode)
	case "RAC":
		return c.Waitlist("%s:RAC", opt.CoachCode)
	}
	if opt.AvailableSeats <= 0 {
		return c.Muted("%s:-", opt.CoachCode)
	}
	return c.Available("%s:%d", opt.CoachCode, opt.AvailableSeats)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
