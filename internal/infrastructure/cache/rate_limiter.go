package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool      // リクエストが許可されたか
	Limit     int       // ウィンドウ内の最大リクエスト数
	Remaining int       // 残りリクエスト数
	ResetAt   time.Time // リセット時刻
	RetryAt   time.Time // リトライ可能時刻（拒否された場合）
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string        // 制限タイプ（league:join等）
	Requests int           // ウィンドウ内の最大リクエスト数
	Window   time.Duration // ウィンドウサイズ
}

// 事前定義されたレート制限設定
var (
	// 参加申請の連投（却下直後の再申請を含む）を抑制する
	RateLimitJoinSubmit = RateLimitConfig{
		Type:     "league:join",
		Requests: 5,
		Window:   10 * time.Minute,
	}
	RateLimitLeagueMutation = RateLimitConfig{
		Type:     "league:mutation",
		Requests: 60,
		Window:   time.Minute,
	}
	RateLimitAPIDefault = RateLimitConfig{
		Type:     "api:default",
		Requests: 600,
		Window:   time.Minute,
	}
)

// RateLimiter はレート制限を提供します
type RateLimiter struct {
	scripter redis.Scripter
	clock    clockwork.Clock
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(scripter redis.Scripter, clock clockwork.Clock) *RateLimiter {
	return &RateLimiter{scripter: scripter, clock: clock}
}

// Sliding Window Log アルゴリズムを使用したレート制限
// Luaスクリプトでアトミックに処理
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])

    -- 古いエントリを削除
    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

    local count = redis.call('ZCARD', key)

    if count < limit then
        redis.call('ZADD', key, now, now .. ':' .. math.random())
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, now + window}
    else
        -- 最も古いエントリが抜ける時刻
        local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
        local retry_at = tonumber(oldest[2]) + window
        return {0, 0, retry_at}
    end
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	key := RateLimitKey(config.Type, identifier)
	now := r.clock.Now().UnixMilli()

	result, err := slidingWindowScript.Run(ctx, r.scripter, []string{key}, now, config.Window.Milliseconds(), config.Requests).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	allowed, ok1 := result[0].(int64)
	remaining, ok2 := result[1].(int64)
	resetAtMs, ok3 := result[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	res := &RateLimitResult{
		Allowed:   allowed == 1,
		Limit:     config.Requests,
		Remaining: int(remaining),
		ResetAt:   time.UnixMilli(resetAtMs),
	}
	if !res.Allowed {
		res.RetryAt = time.UnixMilli(resetAtMs)
	}
	return res, nil
}
