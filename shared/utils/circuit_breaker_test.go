package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	require.Error(t, cb.Call(func() error { return errBoom }))
	assert.Equal(t, StateClosed, cb.GetState())

	require.Error(t, cb.Call(func() error { return errBoom }))
	assert.Equal(t, StateOpen, cb.GetState())

	// Open circuit fails fast without invoking the function.
	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBoom }))
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	// First call after the reset timeout is the probe; success closes.
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBoom }))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Call(func() error { return errBoom }))
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	require.Error(t, cb.Call(func() error { return errBoom }))
	require.NoError(t, cb.Call(func() error { return nil }))
	require.Error(t, cb.Call(func() error { return errBoom }))

	// The intervening success reset the count, so still closed.
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerReset(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, time.Hour)
	require.Error(t, cb.Call(func() error { return errBoom }))
	require.Equal(t, StateOpen, cb.GetState())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.GetState())
	assert.NoError(t, cb.Call(func() error { return nil }))
}
