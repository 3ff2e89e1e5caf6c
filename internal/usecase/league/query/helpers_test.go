package query_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLeague(ownerID uuid.UUID) *entity.League {
	name, _ := valueobject.NewLeagueName("Seoul Weekend League")
	return entity.NewLeague(name, "", "KR", "5v5", nil, ownerID, testNow)
}

func newTestMembership(leagueID, userID uuid.UUID, role valueobject.LeagueRole) *entity.Membership {
	return entity.NewMembership(leagueID, userID, role, testNow)
}
