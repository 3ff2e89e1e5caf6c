package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// JoinRequestRepository は参加申請リポジトリのインターフェース
type JoinRequestRepository interface {
	// 基本CRUD
	Create(ctx context.Context, request *entity.JoinRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)

	// 検索
	FindPendingByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.JoinRequest, error)
	ListPendingWithProfiles(ctx context.Context, leagueID uuid.UUID) ([]*entity.JoinRequestWithProfile, error)

	// 状態遷移（条件付き更新）
	// ResolvePending はstatusがpendingの場合のみ解決結果を書き込み、そうでなければConflictを返す
	ResolvePending(ctx context.Context, request *entity.JoinRequest) error
	// DeletePending はstatusがpendingの場合のみ削除し、そうでなければConflictを返す
	DeletePending(ctx context.Context, id uuid.UUID) error

	// 一括操作
	DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error
}
