package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		wantStr string
	}{
		{
			name: "with backend message",
			err: &APIError{
				StatusCode: 409,
				Endpoint:   "/admin/stations",
				Message:    "Station code already exists",
			},
			wantStr: "API error 409 (/admin/stations): Station code already exists",
		},
		{
			name: "without message",
			err: &APIError{
				StatusCode: 500,
				Status:     "Internal Server Error",
				Endpoint:   "/api/stations",
			},
			wantStr: "API error 500: Internal Server Error (endpoint: /api/stations)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		target    error
		wantMatch bool
	}{
		{"404 matches ErrNotFound", 404, ErrNotFound, true},
		{"500 matches ErrServerError", 500, ErrServerError, true},
		{"502 matches ErrServerError", 502, ErrServerError, true},
		{"400 matches ErrInvalidRequest", 400, ErrInvalidRequest, true},
		{"409 matches ErrInvalidRequest", 409, ErrInvalidRequest, true},
		{"401 matches ErrUnauthorized", 401, ErrUnauthorized, true},
		{"403 matches ErrUnauthorized", 403, ErrUnauthorized, true},
		{"404 does not match ErrServerError", 404, ErrServerError, false},
		{"500 does not match ErrUnauthorized", 500, ErrUnauthorized, false},
		{"nothing matches ErrTimeout", 504, ErrTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &APIError{StatusCode: tt.status})
			if got := errors.Is(err, tt.target); got != tt.wantMatch {
				t.Errorf("Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestNewAPIError(t *testing.T) {
	err := NewAPIError(404, "Not Found", "/admin/stations/9")

	if err.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", err.StatusCode)
	}
	if err.Status != "Not Found" {
		t.Errorf("Status = %q, want %q", err.Status, "Not Found")
	}
	if err.Endpoint != "/admin/stations/9" {
		t.Errorf("Endpoint = %q, want %q", err.Endpoint, "/admin/stations/9")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("fromStation", "field is required")

	expectedStr := "validation error: fromStation - field is required"
	if err.Error() != expectedStr {
		t.Errorf("Error() = %q, want %q", err.Error(), expectedStr)
	}
}

func TestErrMissingField(t *testing.T) {
	err := ErrMissingField("journeyDate")

	ve := &ValidationError{}
	if !errors.As(err, &ve) {
		t.Fatal("Expected *ValidationError")
	}
	if ve.Field != "journeyDate" {
		t.Errorf("Field = %q, want %q", ve.Field, "journeyDate")
	}
}

func TestErrInvalidValue(t *testing.T) {
	err := ErrInvalidValue("status", "CLOSED")

	ve := &ValidationError{}
	if !errors.As(err, &ve) {
		t.Fatal("Expected *ValidationError")
	}
	if ve.Message != "invalid value: CLOSED" {
		t.Errorf("Message = %q, want %q", ve.Message, "invalid value: CLOSED")
	}
}

func TestResult(t *testing.T) {
	ok := success("Station added successfully!")
	if !ok.OK() || ok.Text() != "Station added successfully!" {
		t.Errorf("success result = %+v", ok)
	}

	plain := failure("Failed to delete station", ErrTimeout)
	if plain.OK() || plain.Text() != "Failed to delete station" {
		t.Errorf("failure result = %+v, text %q", plain, plain.Text())
	}

	backend := failure("Failed to add station", NewAPIErrorWithMessage(409, "/admin/stations", "Station code already exists"))
	if backend.Text() != "Station code already exists" {
		t.Errorf("Text() = %q, want backend message", backend.Text())
	}
}
