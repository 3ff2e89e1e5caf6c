package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// MembershipRepository はメンバーシップリポジトリのインターフェース
type MembershipRepository interface {
	// 基本CRUD
	Create(ctx context.Context, membership *entity.Membership) error
	UpdateRole(ctx context.Context, membership *entity.Membership) error
	Delete(ctx context.Context, id uuid.UUID) error

	// 検索
	FindByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error)
	// FindByLeagueAndUserForUpdate は行ロック付きで取得します。トランザクション内で呼び出すこと
	FindByLeagueAndUserForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error)
	ListWithProfiles(ctx context.Context, leagueID uuid.UUID, filter entity.MemberFilter, limit, offset int) ([]*entity.MemberWithProfile, int, error)

	// 存在・カウント
	Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	OwnerExists(ctx context.Context, leagueID uuid.UUID) (bool, error)
	Stats(ctx context.Context, leagueID uuid.UUID) (entity.MemberStats, error)

	// 所有権譲渡（条件付き更新）
	// DemoteOwner は指定ユーザーがまだownerの場合のみadminへ降格し、そうでなければConflictを返す
	DemoteOwner(ctx context.Context, leagueID, ownerID uuid.UUID) error
	// PromoteAdminToOwner は指定ユーザーがadminの場合のみownerへ昇格し、そうでなければConflictを返す
	PromoteAdminToOwner(ctx context.Context, leagueID, userID uuid.UUID) error

	// 一括操作
	DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error
}
