package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestRetrier_Do(t *testing.T) {
	errTransient := errors.New("connection reset")
	errPermanent := errors.New("bad request")

	tests := []struct {
		name      string
		config    *Config
		failFirst int   // attempts that fail before the first success
		failWith  error // error returned by failing attempts
		wantErr   error
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			config:    fastConfig(3),
			wantCalls: 1,
		},
		{
			name:      "succeeds after transient failures",
			config:    fastConfig(3),
			failFirst: 2,
			failWith:  errTransient,
			wantCalls: 3,
		},
		{
			name:      "gives up after max retries",
			config:    fastConfig(2),
			failFirst: 10,
			failWith:  errTransient,
			wantErr:   errTransient,
			wantCalls: 3,
		},
		{
			name:      "zero retries is a single attempt",
			config:    fastConfig(0),
			failFirst: 10,
			failWith:  errTransient,
			wantErr:   errTransient,
			wantCalls: 1,
		},
		{
			name: "non retryable error stops immediately",
			config: func() *Config {
				c := fastConfig(5)
				c.Retryable = func(err error) bool { return !errors.Is(err, errPermanent) }
				return c
			}(),
			failFirst: 10,
			failWith:  errPermanent,
			wantErr:   errPermanent,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := NewRetrier(tt.config).Do(context.Background(), func() error {
				calls++
				if calls <= tt.failFirst {
					return tt.failWith
				}
				return nil
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetrier_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := fastConfig(3)
	config.InitialDelay = time.Hour
	config.MaxDelay = time.Hour

	calls := 0
	err := NewRetrier(config).Do(ctx, func() error {
		calls++
		cancel()
		return errors.New("failed after cancel")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetrier_Backoff(t *testing.T) {
	config := &Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        10 * time.Millisecond,
	}

	start := time.Now()
	_ = NewRetrier(config).Do(context.Background(), func() error { return errors.New("boom") })
	elapsed := time.Since(start)

	// 50ms then 100ms, each plus up to 10ms jitter
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestRetrier_DelayCappedAtMax(t *testing.T) {
	config := &Config{
		MaxRetries:    3,
		BackoffFactor: 100,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      20 * time.Millisecond,
	}

	start := time.Now()
	_ = NewRetrier(config).Do(context.Background(), func() error { return errors.New("boom") })

	// 10ms, then capped at 20ms twice
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}
