package query_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/internal/usecase/league/query"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/tests/testutil/mocks"
)

type listMembersTestDeps struct {
	leagueRepo     *mocks.MockLeagueRepository
	membershipRepo *mocks.MockMembershipRepository
}

func newListMembersTestDeps(t *testing.T) *listMembersTestDeps {
	t.Helper()
	return &listMembersTestDeps{
		leagueRepo:     mocks.NewMockLeagueRepository(t),
		membershipRepo: mocks.NewMockMembershipRepository(t),
	}
}

func (d *listMembersTestDeps) newQuery() *query.ListMembersQuery {
	return query.NewListMembersQuery(d.leagueRepo, service.NewMembershipRegistry(d.membershipRepo))
}

func TestListMembersQuery_Execute_MemberRequests_ReturnsPageAndStats(t *testing.T) {
	ctx := context.Background()
	deps := newListMembersTestDeps(t)
	userID := uuid.New()
	league := newTestLeague(uuid.New())
	members := []*entity.MemberWithProfile{
		{Membership: newTestMembership(league.ID, league.OwnerID, valueobject.LeagueRoleOwner)},
		{Membership: newTestMembership(league.ID, userID, valueobject.LeagueRoleMember), Profile: &entity.PlayerProfile{UserID: userID, Tier: "gold"}},
	}
	stats := entity.MemberStats{TotalMembers: 7, AdminCount: 2}

	deps.leagueRepo.On("FindByID", ctx, league.ID).Return(league, nil)
	deps.membershipRepo.On("FindByLeagueAndUser", ctx, league.ID, userID).
		Return(newTestMembership(league.ID, userID, valueobject.LeagueRoleMember), nil)
	deps.membershipRepo.On("ListWithProfiles", ctx, league.ID, entity.MemberFilter{}, 2, 2).Return(members, 7, nil)
	deps.membershipRepo.On("Stats", ctx, league.ID).Return(stats, nil)

	output, err := deps.newQuery().Execute(ctx, query.ListMembersInput{
		LeagueID: league.ID,
		UserID:   userID,
		Page:     2,
		Limit:    2,
	})

	require.NoError(t, err)
	assert.Len(t, output.Members, 2)
	assert.Equal(t, 7, output.Total)
	assert.Equal(t, 2, output.Page)
	assert.Equal(t, stats, output.Stats)
}

func TestListMembersQuery_Execute_PagingNormalized(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantLimit   int
		wantOffset  int
		wantPage    int
	}{
		{"defaults", 0, 0, query.DefaultMembersLimit, 0, 1},
		{"limit capped", 3, 500, query.MaxMembersLimit, 200, 3},
		{"negative page", -4, 10, 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			deps := newListMembersTestDeps(t)
			userID := uuid.New()
			league := newTestLeague(userID)

			deps.leagueRepo.On("FindByID", ctx, league.ID).Return(league, nil)
			deps.membershipRepo.On("FindByLeagueAndUser", ctx, league.ID, userID).
				Return(newTestMembership(league.ID, userID, valueobject.LeagueRoleOwner), nil)
			deps.membershipRepo.On("ListWithProfiles", ctx, league.ID, mock.Anything, tt.wantLimit, tt.wantOffset).
				Return([]*entity.MemberWithProfile{}, 0, nil)
			deps.membershipRepo.On("Stats", ctx, league.ID).Return(entity.MemberStats{TotalMembers: 1}, nil)

			output, err := deps.newQuery().Execute(ctx, query.ListMembersInput{
				LeagueID: league.ID,
				UserID:   userID,
				Page:     tt.page,
				Limit:    tt.limit,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, output.Page)
			assert.Equal(t, tt.wantLimit, output.Limit)
		})
	}
}

func TestListMembersQuery_Execute_FiltersPassedThrough(t *testing.T) {
	ctx := context.Background()
	deps := newListMembersTestDeps(t)
	userID := uuid.New()
	league := newTestLeague(userID)
	adminRole := valueobject.LeagueRoleAdmin

	deps.leagueRepo.On("FindByID", ctx, league.ID).Return(league, nil)
	deps.membershipRepo.On("FindByLeagueAndUser", ctx, league.ID, userID).
		Return(newTestMembership(league.ID, userID, valueobject.LeagueRoleOwner), nil)
	deps.membershipRepo.On("ListWithProfiles", ctx, league.ID,
		entity.MemberFilter{Role: &adminRole, Tier: "gold", Position: "jungle"}, 20, 0).
		Return([]*entity.MemberWithProfile{}, 0, nil)
	deps.membershipRepo.On("Stats", ctx, league.ID).Return(entity.MemberStats{}, nil)

	_, err := deps.newQuery().Execute(ctx, query.ListMembersInput{
		LeagueID: league.ID,
		UserID:   userID,
		Role:     "admin",
		Tier:     " gold ",
		Position: "Jungle",
	})

	require.NoError(t, err)
}

func TestListMembersQuery_Execute_Outsider_ForbiddenError(t *testing.T) {
	ctx := context.Background()
	deps := newListMembersTestDeps(t)
	outsiderID := uuid.New()
	league := newTestLeague(uuid.New())

	deps.leagueRepo.On("FindByID", ctx, league.ID).Return(league, nil)
	deps.membershipRepo.On("FindByLeagueAndUser", ctx, league.ID, outsiderID).Return(nil, apperror.NewNotFoundError("membership"))

	_, err := deps.newQuery().Execute(ctx, query.ListMembersInput{LeagueID: league.ID, UserID: outsiderID})

	assert.True(t, apperror.IsForbidden(err))
}

func TestListMembersQuery_Execute_InvalidRoleFilter_ValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newListMembersTestDeps(t)
	userID := uuid.New()
	league := newTestLeague(userID)

	deps.leagueRepo.On("FindByID", ctx, league.ID).Return(league, nil)
	deps.membershipRepo.On("FindByLeagueAndUser", ctx, league.ID, userID).
		Return(newTestMembership(league.ID, userID, valueobject.LeagueRoleOwner), nil)

	_, err := deps.newQuery().Execute(ctx, query.ListMembersInput{LeagueID: league.ID, UserID: userID, Role: "captain"})

	assert.True(t, apperror.IsValidation(err))
}
