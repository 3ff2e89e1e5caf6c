package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/tests/testutil"
)

// LeagueTestSuite covers the league lifecycle endpoints
type LeagueTestSuite struct {
	leagueSuite
}

func TestLeagueSuite(t *testing.T) {
	skipUnlessIntegration(t)
	suite.Run(t, new(LeagueTestSuite))
}

func (s *LeagueTestSuite) TestCreateLeague_CreatorBecomesOwner() {
	owner := s.player("owner")

	resp := s.do(http.MethodPost, "/api/v1/leagues", owner.Token, map[string]interface{}{
		"name":        "Weekend Clash",
		"description": "casual games",
		"region":      "KR",
		"type":        "ranked",
	})

	resp.AssertStatus(http.StatusCreated).
		AssertJSONPath("data.league.name", "Weekend Clash").
		AssertJSONPath("data.league.owner_id", owner.ID.String()).
		AssertJSONPath("data.league.accepting", true).
		AssertJSONPath("data.my_role", "owner")

	leagueID := resp.StringAt("data.league.id")
	s.Equal(1, testutil.CountOwners(s.T(), s.server.Pool, leagueID))
	s.Eventually(func() bool {
		actions := s.server.Activity.Actions()
		return len(actions) == 1 && actions[0] == entity.ActivityLeagueCreated
	}, waitFor, tick)
}

func (s *LeagueTestSuite) TestCreateLeague_Unauthenticated() {
	s.do(http.MethodPost, "/api/v1/leagues", "", map[string]string{"name": "x"}).
		AssertStatus(http.StatusUnauthorized)
}

func (s *LeagueTestSuite) TestCreateLeague_ValidationErrors() {
	owner := s.player("owner")

	s.do(http.MethodPost, "/api/v1/leagues", owner.Token, map[string]interface{}{
		"name":   "   ",
		"region": "KR",
		"type":   "ranked",
	}).AssertStatus(http.StatusBadRequest).AssertAppError(apperror.CodeValidationError)

	s.do(http.MethodPost, "/api/v1/leagues", owner.Token, map[string]interface{}{
		"name":   strings.Repeat("a", 101),
		"region": "KR",
		"type":   "ranked",
	}).AssertStatus(http.StatusBadRequest).AssertAppError(apperror.CodeValidationError)
}

func (s *LeagueTestSuite) TestListMyLeagues_OnlyMemberships() {
	owner := s.player("owner")
	other := s.player("other")
	mine := s.createLeague(owner, "Mine")
	s.createLeague(other, "Theirs")

	resp := s.do(http.MethodGet, "/api/v1/leagues/mine", owner.Token, nil)
	resp.AssertStatus(http.StatusOK)

	list := resp.DataList()
	s.Require().Len(list, 1)
	item := list[0].(map[string]interface{})
	s.Equal("owner", item["my_role"])
	s.Equal(mine, item["league"].(map[string]interface{})["id"])
}

func (s *LeagueTestSuite) TestGetLeague_NonMemberHasNoRole() {
	owner := s.player("owner")
	visitor := s.player("visitor")
	leagueID := s.createLeague(owner, "Open League")

	resp := s.do(http.MethodGet, "/api/v1/leagues/"+leagueID, visitor.Token, nil)
	resp.AssertStatus(http.StatusOK).AssertJSONPath("data.league.id", leagueID)
	s.Nil(resp.Data()["my_role"])
}

func (s *LeagueTestSuite) TestGetLeague_NotFound() {
	owner := s.player("owner")
	s.do(http.MethodGet, "/api/v1/leagues/"+owner.ID.String(), owner.Token, nil).
		AssertStatus(http.StatusNotFound).
		AssertAppError(apperror.CodeNotFound)
}

func (s *LeagueTestSuite) TestUpdateLeague_OwnerOnly() {
	owner := s.player("owner")
	admin := s.player("admin")
	member := s.player("member")
	leagueID := s.createLeague(owner, "Before")
	s.addAdmin(owner, admin, leagueID)
	s.addMember(owner, member, leagueID)

	s.do(http.MethodPatch, "/api/v1/leagues/"+leagueID, member.Token, map[string]interface{}{"name": "Nope"}).
		AssertStatus(http.StatusForbidden)
	s.do(http.MethodPatch, "/api/v1/leagues/"+leagueID, admin.Token, map[string]interface{}{"name": "Nope"}).
		AssertStatus(http.StatusForbidden)

	s.do(http.MethodPatch, "/api/v1/leagues/"+leagueID, owner.Token, map[string]interface{}{
		"name":      "After",
		"accepting": false,
	}).AssertStatus(http.StatusOK).
		AssertJSONPath("data.name", "After").
		AssertJSONPath("data.accepting", false)
}

func (s *LeagueTestSuite) TestDeleteLeague_OwnerOnlyAndCascades() {
	owner := s.player("owner")
	admin := s.player("admin")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "Doomed")
	s.addAdmin(owner, admin, leagueID)
	s.submitJoin(applicant, leagueID)

	s.do(http.MethodDelete, "/api/v1/leagues/"+leagueID, admin.Token, nil).
		AssertStatus(http.StatusForbidden)

	s.do(http.MethodDelete, "/api/v1/leagues/"+leagueID, owner.Token, nil).
		AssertStatus(http.StatusNoContent)

	s.do(http.MethodGet, "/api/v1/leagues/"+leagueID, owner.Token, nil).
		AssertStatus(http.StatusNotFound)
	s.do(http.MethodGet, "/api/v1/leagues/"+leagueID+"/join-requests/mine", applicant.Token, nil).
		AssertStatus(http.StatusNotFound)
	s.Equal(0, testutil.CountOwners(s.T(), s.server.Pool, leagueID))
}
