package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, BackoffLinear, p.Mode)
	assert.Equal(t, 100*time.Millisecond, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, 3, p.MaxRetries)
}

func TestNewPolicy_OverridesAndClamps(t *testing.T) {
	p := NewPolicy(BackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial above max is clamped")
	assert.Equal(t, BackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	unknown := NewPolicy("random", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), unknown)
}

func TestDelay(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration // retries 1..n
	}{
		{"fixed", NewPolicy(BackoffFixed, 100*ms, 500*ms, 3), []time.Duration{100 * ms, 100 * ms, 100 * ms}},
		{"linear", NewPolicy(BackoffLinear, 100*ms, 250*ms, 5), []time.Duration{100 * ms, 200 * ms, 250 * ms, 250 * ms}},
		{"exponential", NewPolicy(BackoffExponential, 50*ms, 160*ms, 5), []time.Duration{50 * ms, 100 * ms, 160 * ms, 160 * ms}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for i, want := range tc.want {
				assert.Equal(t, want, tc.policy.Delay(i+1), "retry %d", i+1)
			}
			assert.Zero(t, tc.policy.Delay(0))
			assert.Zero(t, tc.policy.Delay(-1))
		})
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	err := p.Do(context.Background(), func(int) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 5)
	calls := 0
	err := p.Do(context.Background(), func(int) error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })
	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 2)
	var attempts []int
	err := p.Do(context.Background(), func(attempt int) error {
		attempts = append(attempts, attempt)
		return errors.New("still failing")
	}, nil)
	require.Error(t, err)
	assert.Equal(t, []int{0, 1, 2}, attempts)
}

func TestDo_ContextCancelled(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Hour, time.Hour, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Do(ctx, func(int) error { return errors.New("transient") }, nil)
	require.ErrorIs(t, err, context.Canceled)
}
