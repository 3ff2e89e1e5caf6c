package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// Logger はリクエストロギングミドルウェアを返します
// 5xxはerror、4xxはwarn、それ以外はinfoで出力します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// ステータスを確定させるためにここでエラーハンドラーを呼ぶ
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.WithContext(c.Request().Context()).Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", c.Path(),
				"uri", c.Request().RequestURI,
				"status", status,
				"latency_ms", latency.Milliseconds(),
				"ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
				"bytes_out", c.Response().Size,
			)

			return nil
		}
	}
}
