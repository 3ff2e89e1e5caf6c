package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
)

// ListMyLeaguesInput は所属リーグ一覧取得の入力を定義します
type ListMyLeaguesInput struct {
	UserID uuid.UUID
}

// ListMyLeaguesOutput は所属リーグ一覧取得の出力を定義します
type ListMyLeaguesOutput struct {
	Leagues []*entity.LeagueWithRole
}

// ListMyLeaguesQuery は所属リーグ一覧取得クエリです
type ListMyLeaguesQuery struct {
	leagueRepo repository.LeagueRepository
}

// NewListMyLeaguesQuery は新しいListMyLeaguesQueryを作成します
func NewListMyLeaguesQuery(leagueRepo repository.LeagueRepository) *ListMyLeaguesQuery {
	return &ListMyLeaguesQuery{leagueRepo: leagueRepo}
}

// Execute は所属リーグ一覧取得を実行します
func (q *ListMyLeaguesQuery) Execute(ctx context.Context, input ListMyLeaguesInput) (*ListMyLeaguesOutput, error) {
	leagues, err := q.leagueRepo.FindByMemberID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if leagues == nil {
		leagues = []*entity.LeagueWithRole{}
	}
	return &ListMyLeaguesOutput{Leagues: leagues}, nil
}
