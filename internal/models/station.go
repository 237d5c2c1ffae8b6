package models

import (
	"strconv"
	"strings"
)

// Station status values used by the backend.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Station is a railway station as offered by the station pickers.
type Station struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zone      string `json:"zone,omitempty"`
	Platforms int    `json:"platforms,omitempty"`
	Status    string `json:"status,omitempty"`

	// The admin screens receive two boolean activity flags next to Status.
	// Both are kept as sent until the backend settles on one.
	IsActive *bool `json:"isActive,omitempty"`
	Active   *bool `json:"active,omitempty"`
}

// StationResponse is the wire shape of a station in the backend API.
type StationResponse struct {
	ID          int64  `json:"id"`
	StationID   int64  `json:"stationId"` // admin endpoints
	StationCode string `json:"stationCode"`
	StationName string `json:"stationName"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zone        string `json:"zone"`
	Platforms   *int   `json:"platforms"`
	Status      string `json:"status"`
	IsActive    *bool  `json:"isActive"`
	Active      *bool  `json:"active"`
}

// ToStation converts the raw response to a Station
func (r *StationResponse) ToStation() *Station {
	id := r.ID
	if id == 0 {
		id = r.StationID
	}

	s := &Station{
		ID:       id,
		Code:     strings.TrimSpace(r.StationCode),
		Name:     strings.TrimSpace(r.StationName),
		City:     strings.TrimSpace(r.City),
		State:    strings.TrimSpace(r.State),
		Zone:     strings.TrimSpace(r.Zone),
		Status:   strings.ToUpper(strings.TrimSpace(r.Status)),
		IsActive: r.IsActive,
		Active:   r.Active,
	}
	if r.Platforms != nil {
		s.Platforms = *r.Platforms
	}
	return s
}

// DisplayValue returns the city, or the station name for stations without one.
func (s Station) DisplayValue() string {
	if s.City != "" {
		return s.City
	}
	return s.Name
}

// SearchFields returns the fields matched by the station pickers.
func (s Station) SearchFields() []string {
	return []string{s.City, s.Name, s.Code}
}

// Key returns the station ID, or its code when the ID is unknown.
func (s Station) Key() string {
	if s.ID != 0 {
		return strconv.FormatInt(s.ID, 10)
	}
	return s.Code
}

// Label is the secondary line shown under the display value.
func (s Station) Label() string {
	if s.Code == "" {
		return s.Name
	}
	return s.Name + " (" + s.Code + ")"
}

// Option returns the station as a select option.
func (s Station) Option() StationOption {
	return StationOption{Value: s.Key(), Label: s.DisplayValue()}
}

// ActiveFlags reports the three activity indicators. Missing flags are nil.
func (s Station) ActiveFlags() (status string, isActive, active *bool) {
	return s.Status, s.IsActive, s.Active
}

// Inconsistent reports whether the activity indicators that are present
// disagree with each other.
func (s Station) Inconsistent() bool {
	var seen []bool
	switch s.Status {
	case StatusActive:
		seen = append(seen, true)
	case StatusInactive:
		seen = append(seen, false)
	}
	if s.IsActive != nil {
		seen = append(seen, *s.IsActive)
	}
	if s.Active != nil {
		seen = append(seen, *s.Active)
	}
	for _, v := range seen[min(1, len(seen)):] {
		if v != seen[0] {
			return true
		}
	}
	return false
}

// StationOption is a value/label pair for select inputs.
type StationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StationInput is the body of the admin add/update station calls.
type StationInput struct {
	StationCode string `json:"stationCode" validate:"required,max=10"`
	StationName string `json:"stationName" validate:"required"`
	City        string `json:"city,omitempty" validate:"omitempty,max=100"`
	State       string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zone        string `json:"zone,omitempty" validate:"omitempty,max=50"`
	Platforms   int    `json:"platforms,omitempty" validate:"omitempty,min=1,max=50"`
}
