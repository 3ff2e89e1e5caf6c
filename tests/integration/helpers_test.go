package integration

import (
	"net/http"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/koseha/ryg-web-sub000/tests/testutil"
)

// leagueSuite holds helpers shared by the league suites
type leagueSuite struct {
	suite.Suite
	server *testutil.TestServer
}

func (s *leagueSuite) SetupSuite() {
	s.server = testutil.NewTestServer(s.T())
}

func (s *leagueSuite) SetupTest() {
	s.server.Cleanup(s.T())
}

func (s *leagueSuite) do(method, path, token string, body interface{}) *testutil.HTTPResponse {
	return s.server.Client(s.T(), token).Do(method, path, body)
}

func (s *leagueSuite) player(name string) *testutil.TestPlayer {
	return s.server.CreatePlayer(s.T(), name, "gold", "mid")
}

// createLeague creates a league owned by the player and returns its id
func (s *leagueSuite) createLeague(owner *testutil.TestPlayer, name string) string {
	resp := s.do(http.MethodPost, testutil.LeaguePath(""), owner.Token, map[string]interface{}{
		"name":   name,
		"region": "KR",
		"type":   "ranked",
		"rules":  []string{"be nice"},
	})
	resp.AssertStatus(http.StatusCreated)
	return resp.StringAt("data.league.id")
}

// submitJoin submits a join request for the player and returns the request id
func (s *leagueSuite) submitJoin(p *testutil.TestPlayer, leagueID string) string {
	resp := s.do(http.MethodPost, testutil.LeaguePath(leagueID, "join-requests"), p.Token, map[string]interface{}{
		"tier":      "gold",
		"positions": []string{"top", "jungle"},
		"message":   "let me in",
	})
	resp.AssertStatus(http.StatusCreated)
	return resp.StringAt("data.request.id")
}

func (s *leagueSuite) resolve(actor *testutil.TestPlayer, requestID, decision string) *testutil.HTTPResponse {
	return s.do(http.MethodPost, testutil.JoinRequestPath(requestID, "resolve"), actor.Token,
		map[string]string{"decision": decision})
}

// addMember makes the player a member through the join workflow
func (s *leagueSuite) addMember(owner, p *testutil.TestPlayer, leagueID string) {
	requestID := s.submitJoin(p, leagueID)
	s.resolve(owner, requestID, "approve").AssertStatus(http.StatusOK)
}

func (s *leagueSuite) changeRole(actor *testutil.TestPlayer, leagueID string, target *testutil.TestPlayer, role string) *testutil.HTTPResponse {
	return s.do(http.MethodPatch, testutil.LeaguePath(leagueID, "members", target.ID.String(), "role"), actor.Token,
		map[string]string{"role": role})
}

// addAdmin adds the player as a member and promotes them to admin
func (s *leagueSuite) addAdmin(owner, p *testutil.TestPlayer, leagueID string) {
	s.addMember(owner, p, leagueID)
	s.changeRole(owner, leagueID, p, "admin").AssertStatus(http.StatusOK)
}

func (s *leagueSuite) myRole(p *testutil.TestPlayer, leagueID string) string {
	resp := s.do(http.MethodGet, testutil.LeaguePath(leagueID), p.Token, nil)
	resp.AssertStatus(http.StatusOK)
	return resp.StringAt("data.my_role")
}

const (
	waitFor = 2 * time.Second
	tick    = 20 * time.Millisecond
)
