package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// JoinRequestTestSuite covers the join-request workflow endpoints
type JoinRequestTestSuite struct {
	leagueSuite
}

func TestJoinRequestSuite(t *testing.T) {
	skipUnlessIntegration(t)
	suite.Run(t, new(JoinRequestTestSuite))
}

func (s *JoinRequestTestSuite) TestSubmit_DefaultsToCaller() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")

	resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, map[string]interface{}{
		"tier":      "platinum",
		"positions": []string{"support"},
		"message":   "hello",
	})

	resp.AssertStatus(http.StatusCreated).
		AssertJSONPath("data.request.user_id", applicant.ID.String()).
		AssertJSONPath("data.request.status", "pending").
		AssertJSONPath("data.league_accepting", true)
}

func (s *JoinRequestTestSuite) TestSubmit_ForSomeoneElseIsUnauthorized() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	other := s.player("other")
	leagueID := s.createLeague(owner, "League")

	s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, map[string]interface{}{
		"user_id":   other.ID.String(),
		"tier":      "gold",
		"positions": []string{"top"},
		"message":   "hello",
	}).AssertStatus(http.StatusUnauthorized)
}

func (s *JoinRequestTestSuite) TestSubmit_DuplicatePendingConflicts() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	s.submitJoin(applicant, leagueID)

	s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, map[string]interface{}{
		"tier":      "gold",
		"positions": []string{"top"},
		"message":   "again",
	}).AssertStatus(http.StatusConflict)
}

func (s *JoinRequestTestSuite) TestSubmit_MemberConflicts() {
	owner := s.player("owner")
	leagueID := s.createLeague(owner, "League")

	s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), owner.Token, map[string]interface{}{
		"tier":      "gold",
		"positions": []string{"top"},
		"message":   "I own this",
	}).AssertStatus(http.StatusConflict)
}

func (s *JoinRequestTestSuite) TestSubmit_ValidationErrors() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")

	s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, map[string]interface{}{
		"tier":      "gold",
		"positions": []string{"top", "top"},
		"message":   "dupes",
	}).AssertStatus(http.StatusBadRequest).AssertAppError(apperror.CodeValidationError, "positions")

	s.do(http.MethodPost, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, map[string]interface{}{
		"tier":      "gold",
		"positions": []string{},
		"message":   "none",
	}).AssertStatus(http.StatusBadRequest).AssertAppError(apperror.CodeValidationError, "positions")
}

func (s *JoinRequestTestSuite) TestApprove_CreatesMembership() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	requestID := s.submitJoin(applicant, leagueID)

	s.resolve(owner, requestID, "approve").
		AssertStatus(http.StatusOK).
		AssertJSONPath("data.request.status", "approved").
		AssertJSONPath("data.request.resolved_by", owner.ID.String()).
		AssertJSONPath("data.membership.role", "member")

	s.Equal("member", s.myRole(applicant, leagueID))
	s.Eventually(func() bool {
		for _, a := range s.server.Activity.Actions() {
			if a == entity.ActivityJoinRequestApproved {
				return true
			}
		}
		return false
	}, waitFor, tick)
}

func (s *JoinRequestTestSuite) TestReject_AllowsResubmission() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	requestID := s.submitJoin(applicant, leagueID)

	s.resolve(owner, requestID, "reject").
		AssertStatus(http.StatusOK).
		AssertJSONPath("data.request.status", "rejected")
	s.Empty(s.myRole(applicant, leagueID))

	s.submitJoin(applicant, leagueID)
}

func (s *JoinRequestTestSuite) TestResolve_MemberForbidden() {
	owner := s.player("owner")
	member := s.player("member")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	s.addMember(owner, member, leagueID)
	requestID := s.submitJoin(applicant, leagueID)

	s.resolve(member, requestID, "approve").AssertStatus(http.StatusForbidden)
}

func (s *JoinRequestTestSuite) TestResolve_AlreadyResolvedConflicts() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	requestID := s.submitJoin(applicant, leagueID)
	s.resolve(owner, requestID, "reject").AssertStatus(http.StatusOK)

	s.resolve(owner, requestID, "approve").AssertStatus(http.StatusConflict)
}

func (s *JoinRequestTestSuite) TestResolve_ConcurrentOnlyOneWins() {
	owner := s.player("owner")
	admin := s.player("admin")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	s.addAdmin(owner, admin, leagueID)
	requestID := s.submitJoin(applicant, leagueID)

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i, token := range []string{owner.Token, admin.Token} {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/join-requests/%s/resolve", requestID), token,
				map[string]string{"decision": "approve"})
			codes[i] = resp.Code
		}(i, token)
	}
	wg.Wait()

	s.ElementsMatch([]int{http.StatusOK, http.StatusConflict}, codes)
	s.Equal("member", s.myRole(applicant, leagueID))
}

func (s *JoinRequestTestSuite) TestListPending_AdminSeesProfiles() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")
	s.submitJoin(applicant, leagueID)

	resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), owner.Token, nil)
	resp.AssertStatus(http.StatusOK)

	list := resp.DataList()
	s.Require().Len(list, 1)
	item := list[0].(map[string]interface{})
	s.Equal(applicant.ID.String(), item["user_id"])
	s.Equal("applicant", item["profile"].(map[string]interface{})["display_name"])

	s.do(http.MethodGet, fmt.Sprintf("/api/v1/leagues/%s/join-requests", leagueID), applicant.Token, nil).
		AssertStatus(http.StatusForbidden)
}

func (s *JoinRequestTestSuite) TestWithdraw_ByLeagueAndByID() {
	owner := s.player("owner")
	applicant := s.player("applicant")
	leagueID := s.createLeague(owner, "League")

	s.submitJoin(applicant, leagueID)
	s.do(http.MethodGet, fmt.Sprintf("/api/v1/leagues/%s/join-requests/mine", leagueID), applicant.Token, nil).
		AssertStatus(http.StatusOK).
		AssertJSONPath("data.status", "pending")
	s.do(http.MethodDelete, fmt.Sprintf("/api/v1/leagues/%s/join-requests/mine", leagueID), applicant.Token, nil).
		AssertStatus(http.StatusNoContent)
	s.do(http.MethodGet, fmt.Sprintf("/api/v1/leagues/%s/join-requests/mine", leagueID), applicant.Token, nil).
		AssertStatus(http.StatusNotFound)

	requestID := s.submitJoin(applicant, leagueID)
	s.do(http.MethodDelete, "/api/v1/join-requests/"+requestID, owner.Token, nil).
		AssertStatus(http.StatusForbidden)
	s.do(http.MethodDelete, "/api/v1/join-requests/"+requestID, applicant.Token, nil).
		AssertStatus(http.StatusNoContent)
}
