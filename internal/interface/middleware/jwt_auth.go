package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/pkg/jwt"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// TokenValidator はアクセストークンの検証を行います
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.AccessTokenClaims, error)
}

// JWTAuthMiddleware はJWT認証ミドルウェアを提供します
type JWTAuthMiddleware struct {
	validator TokenValidator
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(validator TokenValidator) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{validator: validator}
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダーを取得
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			// Bearer トークンを抽出
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return apperror.NewUnauthorizedError("invalid authorization header format")
			}

			claims, err := m.validator.ValidateAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperror.NewTokenExpiredError()
				}
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			c.Set(ContextKeyUserID, claims.UserID.String())
			c.Set(ContextKeyAccessClaims, claims)

			// リクエストコンテキストにも設定（ログ出力で使用）
			ctx := logger.ContextWithUserID(c.Request().Context(), claims.UserID.String())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
