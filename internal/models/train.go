package models

import (
	"strings"
	"time"
)

// ClassOption is the availability of one coach class on a train.
type ClassOption struct {
	CoachTypeID    int64   `json:"coachTypeId"`
	CoachCode      string  `json:"coachCode"`
	CoachName      string  `json:"coachName"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"availableSeats"`
	Status         string  `json:"status"` // AVAILABLE, WL, RAC
}

// TrainResult is one train returned by a schedule search.
type TrainResult struct {
	TrainID                int64         `json:"trainId"`
	ScheduleID             int64         `json:"scheduleId"`
	TrainNumber            string        `json:"trainNumber"`
	TrainName              string        `json:"trainName"`
	TrainType              string        `json:"trainType"`
	SourceStationName      string        `json:"sourceStationName"`
	DestinationStationName string        `json:"destinationStationName"`
	SourceStationID        int64         `json:"sourceStationId"`
	DestinationStationID   int64         `json:"destinationStationId"`
	DepartureTime          string        `json:"departureTime"`
	ArrivalTime            string        `json:"arrivalTime"`
	TravelDurationMinutes  int           `json:"travelDurationMinutes"`
	DistanceKm             int           `json:"distanceKm"`
	DaysOfRun              string        `json:"daysOfRun"`
	ClassOptions           []ClassOption `json:"classOptions"`
}

// Departure returns the departure time as HH:MM.
func (t TrainResult) Departure() string {
	return clockTime(t.DepartureTime)
}

// Arrival returns the arrival time as HH:MM.
func (t TrainResult) Arrival() string {
	return clockTime(t.ArrivalTime)
}

// Duration returns the travel time.
func (t TrainResult) Duration() time.Duration {
	return time.Duration(t.TravelDurationMinutes) * time.Minute
}

// CheapestFare returns the lowest fare among classes with seats, or 0.
func (t TrainResult) CheapestFare() float64 {
	var best float64
	for _, c := range t.ClassOptions {
		if c.Fare <= 0 {
			continue
		}
		if best == 0 || c.Fare < best {
			best = c.Fare
		}
	}
	return best
}

// clockTime trims "HH:MM:SS" to "HH:MM".
func clockTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	if s == "" {
		return "--:--"
	}
	return s
}

// SearchRequest is the body of a train schedule search.
type SearchRequest struct {
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`
	JourneyDate string `json:"journeyDate"` // YYYY-MM-DD
}
