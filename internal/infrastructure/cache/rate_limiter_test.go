package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisError mimics a server reply error; go-redis only retries with EVAL for errors implementing redis.Error.
type redisError string

func (e redisError) Error() string { return string(e) }

func (redisError) RedisError() {}

var _ redis.Error = redisError("")

// fakeScripter returns a canned script result and records the call.
type fakeScripter struct {
	result   interface{}
	err      error
	noScript bool

	evalCalls int
	keys      []string
	args      []interface{}
}

func (f *fakeScripter) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.evalCalls++
	f.keys = keys
	f.args = args
	return redis.NewCmdResult(f.result, f.err)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	if f.noScript {
		return redis.NewCmdResult(nil, redisError("NOSCRIPT No matching script. Please use EVAL."))
	}
	f.keys = keys
	f.args = args
	return redis.NewCmdResult(f.result, f.err)
}

func (f *fakeScripter) EvalRO(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeScripter) EvalShaRO(ctx context.Context, sha string, keys []string, args ...interface{}) *redis.Cmd {
	return f.EvalSha(ctx, sha, keys, args...)
}

func (f *fakeScripter) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	resetMs := now.Add(RateLimitJoinSubmit.Window).UnixMilli()

	t.Run("allowed", func(t *testing.T) {
		scripter := &fakeScripter{result: []interface{}{int64(1), int64(4), resetMs}}
		limiter := NewRateLimiter(scripter, clock)

		res, err := limiter.Allow(context.Background(), "user-1", RateLimitJoinSubmit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 5, res.Limit)
		assert.Equal(t, 4, res.Remaining)
		assert.Equal(t, resetMs, res.ResetAt.UnixMilli())
		assert.True(t, res.RetryAt.IsZero())

		assert.Equal(t, []string{"ratelimit:league:join:user-1"}, scripter.keys)
		assert.Equal(t, []interface{}{now.UnixMilli(), RateLimitJoinSubmit.Window.Milliseconds(), 5}, scripter.args)
	})

	t.Run("denied sets retry time", func(t *testing.T) {
		scripter := &fakeScripter{result: []interface{}{int64(0), int64(0), resetMs}}
		limiter := NewRateLimiter(scripter, clock)

		res, err := limiter.Allow(context.Background(), "user-1", RateLimitJoinSubmit)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, resetMs, res.RetryAt.UnixMilli())
	})

	t.Run("falls back to EVAL when script is not cached", func(t *testing.T) {
		scripter := &fakeScripter{noScript: true, result: []interface{}{int64(1), int64(59), resetMs}}
		limiter := NewRateLimiter(scripter, clock)

		res, err := limiter.Allow(context.Background(), "user-2", RateLimitLeagueMutation)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, scripter.evalCalls)
	})

	t.Run("redis error", func(t *testing.T) {
		scripter := &fakeScripter{err: errors.New("connection refused")}
		limiter := NewRateLimiter(scripter, clock)

		_, err := limiter.Allow(context.Background(), "user-1", RateLimitJoinSubmit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check rate limit")
	})

	t.Run("malformed result", func(t *testing.T) {
		scripter := &fakeScripter{result: []interface{}{int64(1)}}
		limiter := NewRateLimiter(scripter, clock)

		_, err := limiter.Allow(context.Background(), "user-1", RateLimitJoinSubmit)
		require.Error(t, err)
	})
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:api:default:10.0.0.1", RateLimitKey("api:default", "10.0.0.1"))
}
