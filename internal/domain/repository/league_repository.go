package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// LeagueRepository はリーグリポジトリのインターフェース
type LeagueRepository interface {
	// 基本CRUD
	Create(ctx context.Context, league *entity.League) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.League, error)
	Update(ctx context.Context, league *entity.League) error
	Delete(ctx context.Context, id uuid.UUID) error

	// 行ロック付き取得。トランザクション内で呼び出すこと
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.League, error)

	// UpdateOwner はオーナー参照のみを更新します。設定の更新とは競合しない
	UpdateOwner(ctx context.Context, leagueID, ownerID uuid.UUID, updatedAt time.Time) error

	// 検索
	FindByMemberID(ctx context.Context, userID uuid.UUID) ([]*entity.LeagueWithRole, error)

	// 整合性監査
	FindIDsWithoutSingleOwner(ctx context.Context) ([]uuid.UUID, error)
}
