package command_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(testNow)
}

func newTestLeague(ownerID uuid.UUID) *entity.League {
	name, _ := valueobject.NewLeagueName("Seoul Weekend League")
	return entity.NewLeague(name, "friendly scrims", "KR", "5v5", []string{"be on time"}, ownerID, testNow.Add(-24*time.Hour))
}

func newTestMembership(leagueID, userID uuid.UUID, role valueobject.LeagueRole) *entity.Membership {
	return entity.NewMembership(leagueID, userID, role, testNow.Add(-time.Hour))
}

func newTestJoinRequest(leagueID, userID uuid.UUID) *entity.JoinRequest {
	return entity.NewJoinRequest(leagueID, userID, "let me in", "gold", []string{"mid"}, testNow.Add(-time.Hour))
}

func assertAppErrorCode(t *testing.T, err error, code apperror.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
