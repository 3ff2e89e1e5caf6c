package di

import (
	"github.com/koseha/ryg-web-sub000/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	CORS      middleware.CORSConfig
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	corsConfig := middleware.DefaultCORSConfig()
	if len(c.config.Security.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = c.config.Security.CORSOrigins
	}

	// RateLimiterがnilのままインターフェースに入れるとnil判定が効かないため分岐する
	var limiter middleware.RateLimiter
	if c.RateLimiter != nil {
		limiter = c.RateLimiter
	}

	return &Middlewares{
		JWTAuth:   middleware.NewJWTAuthMiddleware(c.JWTService),
		RateLimit: middleware.NewRateLimitMiddleware(limiter),
		CORS:      corsConfig,
	}
}
