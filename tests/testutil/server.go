package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/di"
	"github.com/koseha/ryg-web-sub000/internal/interface/router"
	"github.com/koseha/ryg-web-sub000/internal/interface/server"
	"github.com/koseha/ryg-web-sub000/pkg/config"
)

// TestServer holds all test server dependencies
type TestServer struct {
	Echo      *echo.Echo
	Pool      *pgxpool.Pool
	Container *di.Container
	Activity  *RecordingSink
}

// NewTestConfig returns the application config used by integration tests.
// Rate limiting is disabled so suites do not need Redis.
func NewTestConfig() *config.Config {
	testConfig := DefaultTestConfig()
	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Redis:  config.RedisConfig{RateLimitEnabled: false},
		NATS:   config.NATSConfig{BufferSize: 100},
		JWT: config.JWTConfig{
			SecretKey:         testConfig.JWTSecretKey,
			Issuer:            "ryg-web-test",
			Audience:          []string{"ryg-web-api-test"},
			AccessTokenExpiry: 15 * time.Minute,
		},
		Security: config.SecurityConfig{CORSOrigins: []string{"http://localhost:3000"}},
	}
}

// NewTestServer creates a fully configured test server wired the same way as cmd/api
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, NewTestConfig())
}

// NewTestServerWithConfig creates a test server with a custom config
func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	pool := SetupTestEnvironment(t)
	sink := NewRecordingSink()

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		PostgresPool: pool,
		ActivitySink: sink,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Close()
	})

	srv := server.NewServer(server.DefaultConfig())
	middlewares := di.NewMiddlewares(container)
	srv.UseDefaultMiddlewares(middlewares.CORS)
	router.NewRouter(srv.Echo(), di.NewHandlersForTest(container), middlewares).Setup()

	return &TestServer{
		Echo:      srv.Echo(),
		Pool:      pool,
		Container: container,
		Activity:  sink,
	}
}

// Cleanup truncates all league tables
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	TruncateTables(t, ts.Pool, "join_requests", "league_memberships", "leagues", "player_profiles")
	ts.Activity.Reset()
}

// TokenFor issues an access token for the given user
func (ts *TestServer) TokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := ts.Container.JWTService.GenerateAccessToken(userID, "player")
	require.NoError(t, err)
	return token
}
