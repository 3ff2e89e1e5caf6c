package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(clock clockwork.Clock) *JWTService {
	cfg := DefaultConfig()
	cfg.SecretKey = testSecret
	return NewJWTServiceWithClock(cfg, clock)
}

func TestJWTService_GenerateThenValidate_ReturnsClaims(t *testing.T) {
	svc := newTestService(clockwork.NewRealClock())
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "Faker")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Faker", claims.DisplayName)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_ValidateAccessToken_Expired_ReturnsErrTokenExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := newTestService(clock)

	token, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	clock.Advance(16 * time.Minute)
	_, err = svc.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_ValidateAccessToken_WrongSecret_ReturnsErrInvalidToken(t *testing.T) {
	svc := newTestService(clockwork.NewRealClock())
	token, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	other := NewJWTService(Config{
		SecretKey:         "ffffffffffffffffffffffffffffffff",
		Issuer:            "ryg-web",
		Audience:          []string{"ryg-web-api"},
		AccessTokenExpiry: time.Minute,
	})
	_, err = other.ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_WrongAudience_ReturnsErrInvalidToken(t *testing.T) {
	svc := newTestService(clockwork.NewRealClock())
	token, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.SecretKey = testSecret
	cfg.Audience = []string{"someone-else"}
	_, err = NewJWTService(cfg).ValidateAccessToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateAccessToken_Garbage_ReturnsErrInvalidToken(t *testing.T) {
	svc := newTestService(clockwork.NewRealClock())

	_, err := svc.ValidateAccessToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrSecretKeyRequired)
	assert.ErrorIs(t, Config{SecretKey: "short"}.Validate(), ErrSecretKeyTooShort)
	assert.NoError(t, Config{SecretKey: testSecret}.Validate())
}
