package circuitbreaker

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-highlights/internal/common/errors"
	"match-highlights/internal/common/logging"
)

func TestExecutePassesThroughWhenClosed(t *testing.T) {
	breaker := NewGoBreaker("test", DefaultConfig(), logging.NewNoOpLogger())

	called := false
	err := breaker.Execute(context.Background(), func() error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestExecuteOpensAfterConsecutiveFailures(t *testing.T) {
	config := Config{MaxFailures: 2, Timeout: time.Minute, MaxConcurrentRequests: 1}
	breaker := NewGoBreaker("test", config, logging.NewNoOpLogger())

	boom := goerrors.New("upstream down")
	for i := 0; i < 2; i++ {
		err := breaker.Execute(context.Background(), func() error { return boom })
		require.ErrorIs(t, err, boom)
	}

	assert.True(t, breaker.IsOpen())

	err := breaker.Execute(context.Background(), func() error {
		t.Fatal("function should not run while circuit is open")
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeInternal))
}

func TestValidationErrorsDoNotTripBreaker(t *testing.T) {
	config := Config{MaxFailures: 1, Timeout: time.Minute, MaxConcurrentRequests: 1}
	breaker := NewGoBreaker("test", config, logging.NewNoOpLogger())

	for i := 0; i < 5; i++ {
		err := breaker.Execute(context.Background(), func() error {
			return errors.ValidationError("bad input")
		})
		require.Error(t, err)
	}

	assert.False(t, breaker.IsOpen())
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	breaker := NewGoBreaker("test", Config{}, logging.NewNoOpLogger())
	assert.NoError(t, breaker.Execute(context.Background(), func() error { return nil }))
}

func TestExecuteHonoursCancelledContext(t *testing.T) {
	breaker := NewGoBreaker("test", DefaultConfig(), logging.NewNoOpLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := breaker.Execute(ctx, func() error {
		t.Fatal("function should not run with a cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
