package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// MockLeagueRepository is a mock of repository.LeagueRepository
type MockLeagueRepository struct {
	mock.Mock
}

func NewMockLeagueRepository(t *testing.T) *MockLeagueRepository {
	m := &MockLeagueRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLeagueRepository) Create(ctx context.Context, league *entity.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}

func (m *MockLeagueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.League), args.Error(1)
}

func (m *MockLeagueRepository) Update(ctx context.Context, league *entity.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}

func (m *MockLeagueRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.League), args.Error(1)
}

func (m *MockLeagueRepository) UpdateOwner(ctx context.Context, leagueID, ownerID uuid.UUID, updatedAt time.Time) error {
	args := m.Called(ctx, leagueID, ownerID, updatedAt)
	return args.Error(0)
}

func (m *MockLeagueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeagueRepository) FindByMemberID(ctx context.Context, userID uuid.UUID) ([]*entity.LeagueWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LeagueWithRole), args.Error(1)
}

func (m *MockLeagueRepository) FindIDsWithoutSingleOwner(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockMembershipRepository is a mock of repository.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func NewMockMembershipRepository(t *testing.T) *MockMembershipRepository {
	m := &MockMembershipRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, membership *entity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMembershipRepository) FindByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByLeagueAndUserForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListWithProfiles(ctx context.Context, leagueID uuid.UUID, filter entity.MemberFilter, limit, offset int) ([]*entity.MemberWithProfile, int, error) {
	args := m.Called(ctx, leagueID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.MemberWithProfile), args.Int(1), args.Error(2)
}

func (m *MockMembershipRepository) Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, leagueID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) OwnerExists(ctx context.Context, leagueID uuid.UUID) (bool, error) {
	args := m.Called(ctx, leagueID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) Stats(ctx context.Context, leagueID uuid.UUID) (entity.MemberStats, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).(entity.MemberStats), args.Error(1)
}

func (m *MockMembershipRepository) DemoteOwner(ctx context.Context, leagueID, ownerID uuid.UUID) error {
	args := m.Called(ctx, leagueID, ownerID)
	return args.Error(0)
}

func (m *MockMembershipRepository) PromoteAdminToOwner(ctx context.Context, leagueID, userID uuid.UUID) error {
	args := m.Called(ctx, leagueID, userID)
	return args.Error(0)
}

func (m *MockMembershipRepository) DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}

// MockJoinRequestRepository is a mock of repository.JoinRequestRepository
type MockJoinRequestRepository struct {
	mock.Mock
}

func NewMockJoinRequestRepository(t *testing.T) *MockJoinRequestRepository {
	m := &MockJoinRequestRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) FindPendingByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.JoinRequest, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListPendingWithProfiles(ctx context.Context, leagueID uuid.UUID) ([]*entity.JoinRequestWithProfile, error) {
	args := m.Called(ctx, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.JoinRequestWithProfile), args.Error(1)
}

func (m *MockJoinRequestRepository) ResolvePending(ctx context.Context, request *entity.JoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error {
	args := m.Called(ctx, leagueID)
	return args.Error(0)
}
