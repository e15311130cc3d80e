// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package breaker

import (
	"errors"
	"fmt"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreaker_Execute_Success(t *testing.T) {
	b := New[string]("test-success")

	got, err := b.Execute(func() (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if got != "ok" {
		t.Errorf("Execute() = %q, want %q", got, "ok")
	}
}

func TestBreaker_Execute_FailurePassesThrough(t *testing.T) {
	b := New[int]("test-failure")
	wantErr := errors.New("upstream exploded")

	got, err := b.Execute(func() (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Execute() error = %v, want %v", err, wantErr)
	}
	if got != 0 {
		t.Errorf("Execute() = %d, want zero value on error", got)
	}
}

func TestBreaker_OpensAfterFailureThreshold(t *testing.T) {
	b := New[string]("test-trip")
	boom := errors.New("boom")

	// 10 consecutive failures exceed both the minimum request count and the
	// 60% failure ratio, so the circuit must open.
	for i := 0; i < 10; i++ {
		if _, err := b.Execute(func() (string, error) { return "", boom }); !errors.Is(err, boom) {
			t.Fatalf("failure %d: error = %v, want %v", i, err, boom)
		}
	}

	_, err := b.Execute(func() (string, error) { return "should not run", nil })
	if !IsOpen(err) {
		t.Fatalf("after threshold, Execute() error = %v, want open-circuit rejection", err)
	}
}

func TestBreaker_StaysClosedUnderThreshold(t *testing.T) {
	b := New[string]("test-under-threshold")

	// 9 failures stay below the 10-request minimum; the circuit must remain
	// closed and keep letting calls through.
	for i := 0; i < 9; i++ {
		_, _ = b.Execute(func() (string, error) { return "", fmt.Errorf("fail %d", i) })
	}

	got, err := b.Execute(func() (string, error) { return "still closed", nil })
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if got != "still closed" {
		t.Errorf("Execute() = %q, want %q", got, "still closed")
	}
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"ordinary error", errors.New("nope"), false},
		{"open state", gobreaker.ErrOpenState, true},
		{"too many requests", gobreaker.ErrTooManyRequests, true},
		{"wrapped open state", fmt.Errorf("call failed: %w", gobreaker.ErrOpenState), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpen(tt.err); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
