package output

import (
	"strings"
	"testing"

	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/testutil"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"always", ColorAlways},
		{"never", ColorNever},
		{"auto", ColorAuto},
		{"", ColorAuto},        // default
		{"invalid", ColorAuto}, // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseColorMode(tt.input)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestNewColors_NeverMode(t *testing.T) {
	c := NewColors(ColorNever)

	testutil.AssertEqual(t, c.Time("17:00"), "17:00")
	testutil.AssertEqual(t, c.Train("12951"), "12951")
	testutil.AssertEqual(t, c.Code("BCT"), "BCT")
	testutil.AssertEqual(t, c.Fare("₹755"), "₹755")
	testutil.AssertEqual(t, c.Available("3A:42"), "3A:42")
	testutil.AssertEqual(t, c.Waitlist("SL:WL"), "SL:WL")
	testutil.AssertEqual(t, c.Inactive("INACTIVE"), "INACTIVE")
	testutil.AssertEqual(t, c.Success("Station added successfully!"), "Station added successfully!")
	testutil.AssertEqual(t, c.Error("Failed"), "Failed")
	testutil.AssertEqual(t, c.Header("Trains"), "Trains")
	testutil.AssertEqual(t, c.Muted("details"), "details")
}

func TestNewColors_AlwaysMode(t *testing.T) {
	c := NewColors(ColorAlways)

	result := c.Train("12951")
	testutil.AssertContains(t, result, "\033[")
	testutil.AssertContains(t, result, "12951")
	testutil.AssertEqual(t, stripANSI(result), "12951")
}

func TestColors_Sprintf(t *testing.T) {
	c := NewColors(ColorNever)

	testutil.AssertEqual(t, c.Time("%02d:%02d", 14, 30), "14:30")
	testutil.AssertEqual(t, c.Available("%s:%d", "2A", 7), "2A:7")
	testutil.AssertEqual(t, c.Code("%-6s", "HWH"), "HWH   ")
}

func TestFormatStatus(t *testing.T) {
	c := NewColors(ColorNever)
	yes, no := true, false

	tests := []struct {
		name    string
		station models.Station
		want    string
	}{
		{"active", models.Station{Status: models.StatusActive}, "ACTIVE   "},
		{"inactive", models.Station{Status: models.StatusInactive}, "INACTIVE "},
		{"missing", models.Station{}, "-        "},
		{"consistent flags", models.Station{Status: models.StatusActive, IsActive: &yes}, "ACTIVE   "},
		{"conflicting flags", models.Station{Status: models.StatusInactive, Active: &yes, IsActive: &no}, "INACTIVE!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.FormatStatus(tt.station)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, len(got), 9)
		})
	}
}

func TestFormatAvailability(t *testing.T) {
	c := NewColors(ColorNever)

	tests := []struct {
		opt  models.ClassOption
		want string
	}{
		{models.ClassOption{CoachCode: "3A", AvailableSeats: 42, Status: "AVAILABLE"}, "3A:42"},
		{models.ClassOption{CoachCode: "SL", Status: "WL"}, "SL:WL"},
		{models.ClassOption{CoachCode: "SL", Status: "rac"}, "SL:RAC"},
		{models.ClassOption{CoachCode: "1A", AvailableSeats: 0}, "1A:-"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, c.FormatAvailability(tt.opt), tt.want)
		})
	}
}

// Helper functions

func stripANSI(s string) string {
	// Simple ANSI stripper for testing
	var result strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}
