package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/pkg/jwt"
)

const (
	ContextKeyUserID       = "user_id"
	ContextKeyAccessClaims = "access_claims"
)

// GetAccessClaims はコンテキストから検証済みのクレームを取得します
// 認証されていない場合はnilを返します
func GetAccessClaims(c echo.Context) *jwt.AccessTokenClaims {
	if claims, ok := c.Get(ContextKeyAccessClaims).(*jwt.AccessTokenClaims); ok {
		return claims
	}
	return nil
}

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserUUID はコンテキストからユーザーIDをUUIDとして取得します
func GetUserUUID(c echo.Context) (uuid.UUID, bool) {
	claims := GetAccessClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
