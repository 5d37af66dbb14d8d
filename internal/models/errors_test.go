package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	cases := []struct {
		name     string
		sentinel error
	}{
		{"not found", ErrNotFound},
		{"permission denied", ErrPermissionDenied},
		{"validation", ErrValidation},
		{"invalid operation", ErrInvalidOperation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: some context", tc.sentinel)
			assert.True(t, errors.Is(wrapped, tc.sentinel))
			assert.Contains(t, wrapped.Error(), tc.sentinel.Error())
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrPermissionDenied, ErrValidation, ErrInvalidOperation}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}
