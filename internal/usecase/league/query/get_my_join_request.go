package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
)

// GetMyJoinRequestInput は自分の参加申請取得の入力を定義します
type GetMyJoinRequestInput struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

// GetMyJoinRequestQuery は自分の保留中の参加申請を取得するクエリです
type GetMyJoinRequestQuery struct {
	joinRequestRepo repository.JoinRequestRepository
}

// NewGetMyJoinRequestQuery は新しいGetMyJoinRequestQueryを作成します
func NewGetMyJoinRequestQuery(joinRequestRepo repository.JoinRequestRepository) *GetMyJoinRequestQuery {
	return &GetMyJoinRequestQuery{joinRequestRepo: joinRequestRepo}
}

// Execute は保留中の申請を返します。存在しない場合はNotFoundを返します
func (q *GetMyJoinRequestQuery) Execute(ctx context.Context, input GetMyJoinRequestInput) (*entity.JoinRequest, error) {
	return q.joinRequestRepo.FindPendingByLeagueAndUser(ctx, input.LeagueID, input.UserID)
}
