package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// TestPlayer is a user with a stored player profile and a valid token
type TestPlayer struct {
	ID          uuid.UUID
	DisplayName string
	Token       string
}

// CreatePlayer inserts a player profile and returns a player with an access token
func (ts *TestServer) CreatePlayer(t *testing.T, displayName, tier string, positions ...string) *TestPlayer {
	t.Helper()

	id := uuid.New()
	InsertPlayerProfile(t, ts.Pool, id, displayName, tier, positions)

	return &TestPlayer{
		ID:          id,
		DisplayName: displayName,
		Token:       ts.TokenFor(t, id),
	}
}

// InsertPlayerProfile inserts a row into player_profiles
func InsertPlayerProfile(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, displayName, tier string, positions []string) {
	t.Helper()
	if positions == nil {
		positions = []string{}
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO player_profiles (user_id, display_name, tier, positions) VALUES ($1, $2, $3, $4)`,
		userID, displayName, tier, positions,
	)
	require.NoError(t, err)
}

// CountOwners returns the number of owner memberships of a league
func CountOwners(t *testing.T, pool *pgxpool.Pool, leagueID string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM league_memberships WHERE league_id = $1 AND role = 'owner'`,
		leagueID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

// RecordingSink is an activity sink that keeps published events in memory
type RecordingSink struct {
	mu     sync.Mutex
	events []entity.ActivityEvent
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Publish(_ context.Context, event entity.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Actions returns the published actions in order
func (s *RecordingSink) Actions() []entity.ActivityAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]entity.ActivityAction, 0, len(s.events))
	for _, e := range s.events {
		actions = append(actions, e.Action)
	}
	return actions
}

// Reset drops all published events
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
