package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
)

// ListJoinRequestsInput は参加申請一覧取得の入力を定義します
type ListJoinRequestsInput struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

// ListJoinRequestsOutput は参加申請一覧取得の出力を定義します
type ListJoinRequestsOutput struct {
	Requests []*entity.JoinRequestWithProfile
}

// ListJoinRequestsQuery は参加申請一覧取得クエリです
type ListJoinRequestsQuery struct {
	leagueRepo      repository.LeagueRepository
	registry        service.MembershipRegistry
	joinRequestRepo repository.JoinRequestRepository
}

// NewListJoinRequestsQuery は新しいListJoinRequestsQueryを作成します
func NewListJoinRequestsQuery(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	joinRequestRepo repository.JoinRequestRepository,
) *ListJoinRequestsQuery {
	return &ListJoinRequestsQuery{
		leagueRepo:      leagueRepo,
		registry:        registry,
		joinRequestRepo: joinRequestRepo,
	}
}

// Execute は保留中の参加申請を新しい順に返します
func (q *ListJoinRequestsQuery) Execute(ctx context.Context, input ListJoinRequestsInput) (*ListJoinRequestsOutput, error) {
	// 1. リーグの存在確認
	if _, err := q.leagueRepo.FindByID(ctx, input.LeagueID); err != nil {
		return nil, err
	}

	// 2. Owner/Adminのみ閲覧可能
	role, err := q.registry.RoleOf(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(role, authz.OperationViewJoinRequests, authz.NoRole); err != nil {
		return nil, err
	}

	// 3. 申請一覧を取得
	requests, err := q.joinRequestRepo.ListPendingWithProfiles(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []*entity.JoinRequestWithProfile{}
	}

	return &ListJoinRequestsOutput{Requests: requests}, nil
}
