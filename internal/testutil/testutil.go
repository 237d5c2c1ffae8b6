// Package testutil holds the assertion helpers and HTTP fixtures shared by
// the package tests.
package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// AssertEqual fails the test when got != want.
func AssertEqual[T comparable](t testing.TB, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertDiff compares values structurally and prints the diff on mismatch.
func AssertDiff(t testing.TB, got, want any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// AssertNil stops the test on an unexpected error.
func AssertNil(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError stops the test when err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

// AssertContains fails when sub is not part of got.
func AssertContains(t testing.TB, got, sub string) {
	t.Helper()
	if !strings.Contains(got, sub) {
		t.Errorf("got %q, want it to contain %q", got, sub)
	}
}

// AssertNotContains fails when sub is part of got.
func AssertNotContains(t testing.TB, got, sub string) {
	t.Helper()
	if strings.Contains(got, sub) {
		t.Errorf("got %q, want it to not contain %q", got, sub)
	}
}

// AssertTimeEqual fails when the times are further apart than tolerance.
func AssertTimeEqual(t testing.TB, got, want time.Time, tolerance time.Duration) {
	t.Helper()
	if d := got.Sub(want).Abs(); d > tolerance {
		t.Errorf("got %v, want %v (off by %v, tolerance %v)", got, want, d, tolerance)
	}
}

// AssertFloatEqual fails when the floats are further apart than tolerance.
func AssertFloatEqual(t testing.TB, got, want, tolerance float64) {
	t.Helper()
	d := got - want
	if d < 0 {
		d = -d
	}
	if d > tolerance {
		t.Errorf("got %v, want %v (tolerance: %v)", got, want, tolerance)
	}
}

func AssertTrue(t testing.TB, condition bool) {
	t.Helper()
	if !condition {
		t.Error("expected true, got false")
	}
}

func AssertFalse(t testing.TB, condition bool) {
	t.Helper()
	if condition {
		t.Error("expected false, got true")
	}
}

// AssertLen fails when items does not hold exactly want elements.
func AssertLen[T any](t testing.TB, items []T, want int) {
	t.Helper()
	if got := len(items); got != want {
		t.Errorf("got %d items, want %d", got, want)
	}
}
