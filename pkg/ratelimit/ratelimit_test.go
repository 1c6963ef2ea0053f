package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientAlwaysAllows(t *testing.T) {
	ctx := context.Background()

	ok, err := Acquire(ctx, nil, "user-1", "daily_update", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Hit(ctx, nil, "a@b.c", "login", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, Release(ctx, nil, "user-1", "daily_update"))

	ttl, err := TTL(ctx, nil, "user-1", "daily_update")
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rate_limit:user-1:login", Key("user-1", "login"))
}
