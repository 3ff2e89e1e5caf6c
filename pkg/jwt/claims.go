package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims はアクセストークンのクレームを定義します
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	UserID      uuid.UUID `json:"uid"`
	DisplayName string    `json:"name,omitempty"`
}
