package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/cache"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// RateLimiter はレート制限の判定を行います
type RateLimiter interface {
	Allow(ctx context.Context, identifier string, config cache.RateLimitConfig) (*cache.RateLimitResult, error)
}

// RateLimitMiddleware はレート制限ミドルウェアを提供します
// limiterがnilの場合はすべてのリクエストを許可します
type RateLimitMiddleware struct {
	limiter RateLimiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ByIP はIPアドレスでレート制限するミドルウェアを返します
func (m *RateLimitMiddleware) ByIP(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		return c.RealIP()
	})
}

// ByUser はユーザーIDでレート制限するミドルウェアを返します
// 認証ミドルウェアの後に配置します
func (m *RateLimitMiddleware) ByUser(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		if userID := GetUserID(c); userID != "" {
			return "user:" + userID
		}
		// ユーザーIDがない場合はIPでフォールバック
		return "ip:" + c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(config cache.RateLimitConfig, identify func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.limiter == nil {
				return next(c)
			}

			result, err := m.limiter.Allow(c.Request().Context(), identify(c), config)
			if err != nil {
				// レート制限チェックに失敗した場合はリクエストを許可
				logger.Warn(c.Request().Context(), "rate limit check failed", "type", config.Type, "error", err)
				return next(c)
			}

			setRateLimitHeaders(c, result)

			if !result.Allowed {
				if wait := time.Until(result.RetryAt); wait > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

// setRateLimitHeaders はレート制限ヘッダーを設定します
func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	h := c.Response().Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
