package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

// GetLeagueInput はリーグ取得の入力を定義します
type GetLeagueInput struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

// GetLeagueOutput はリーグ取得の出力を定義します
type GetLeagueOutput struct {
	League *entity.League
	MyRole valueobject.LeagueRole // メンバーでない場合は空
}

// GetLeagueQuery はリーグ取得クエリです
type GetLeagueQuery struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
}

// NewGetLeagueQuery は新しいGetLeagueQueryを作成します
func NewGetLeagueQuery(leagueRepo repository.LeagueRepository, registry service.MembershipRegistry) *GetLeagueQuery {
	return &GetLeagueQuery{
		leagueRepo: leagueRepo,
		registry:   registry,
	}
}

// Execute はリーグ取得を実行します
func (q *GetLeagueQuery) Execute(ctx context.Context, input GetLeagueInput) (*GetLeagueOutput, error) {
	league, err := q.leagueRepo.FindByID(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}

	role, err := q.registry.RoleOf(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetLeagueOutput{League: league, MyRole: role}, nil
}
