package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Wait_Context(t *testing.T) {
	// 1 request per second
	rl := NewRateLimiter(1)

	// Consume the initial token
	require.NoError(t, rl.Wait(context.Background()))

	// Next wait should block for ~1s
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Wait(ctx)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 200*time.Millisecond)
}

func TestRateLimiter_Wait_Normal(t *testing.T) {
	// 10 requests per second = 100ms per token. Initial tokens = 10.
	rl := NewRateLimiter(10)

	for i := 0; i < 10; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiter_Nil(t *testing.T) {
	rl := NewRateLimiter(0)
	assert.Nil(t, rl)
	assert.NoError(t, rl.Wait(context.Background()))
}
