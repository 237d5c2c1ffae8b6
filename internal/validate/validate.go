// Package validate holds the client-side form checks run before anything is
// sent to the backend.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/orrs-rail/orrs-cli/internal/models"
)

// FieldErrors maps a form field (JSON name) to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// messages maps "field.tag" to the text shown next to the form field.
var messages = map[string]string{
	"stationCode.required": "Station code is required",
	"stationCode.max":      "Station code must be 10 characters or less",
	"stationName.required": "Station name is required",
	"platforms.min":        "Platforms must be between 1 and 50",
	"platforms.max":        "Platforms must be between 1 and 50",
	"from.required":        "Select a departure station from the list",
	"to.required":          "Select a destination station from the list",
	"to.nefield":           "Source and destination cannot be same",
	"date.required":        "Journey date is required",
	"date.journeydate":     "Journey date must be DD/MM/YYYY and not in the past",
}

// Validator runs the form checks.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// New creates a Validator. now supplies "today" for journey date checks.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	val := &Validator{v: v, now: now}
	_ = v.RegisterValidation("journeydate", val.isJourneyDate)
	return val
}

// Station validates the admin station form.
func (val *Validator) Station(in models.StationInput) error {
	return val.run(in)
}

// SearchInput is the train search form. From and To hold the station names
// sent to the backend for valid picker selections; an empty name means the
// picker text did not resolve to a station.
type SearchInput struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required,nefield=From"`
	Date string `json:"date" validate:"required,journeydate"`
}

// Search validates the train search form.
func (val *Validator) Search(in SearchInput) error {
	return val.run(in)
}

func (val *Validator) run(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed %q check", fe.Tag())
		}
		out[field] = msg
	}
	return out
}

func (val *Validator) isJourneyDate(fl validator.FieldLevel) bool {
	d, err := ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	now := val.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// dateLayouts are the accepted journey date formats.
var dateLayouts = []string{"02/01/2006", "2006-01-02", "02.01.2006"}

// ParseDate parses a journey date as a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY or YYYY-MM-DD", s)
}

// FormatDate renders a journey date the way the backend expects it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
