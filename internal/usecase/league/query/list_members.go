package query

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

const (
	DefaultMembersPage  = 1
	DefaultMembersLimit = 20
	MaxMembersLimit     = 100
)

// ListMembersInput はメンバー一覧取得の入力を定義します
type ListMembersInput struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID // 取得を要求しているユーザー
	Page     int
	Limit    int
	Role     string
	Tier     string
	Position string
}

// ListMembersOutput はメンバー一覧取得の出力を定義します
type ListMembersOutput struct {
	Members []*entity.MemberWithProfile
	Total   int // 絞り込み後の件数
	Page    int
	Limit   int
	Stats   entity.MemberStats // 絞り込み前のリーグ全体の集計
}

// ListMembersQuery はメンバー一覧取得クエリです
type ListMembersQuery struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
}

// NewListMembersQuery は新しいListMembersQueryを作成します
func NewListMembersQuery(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
) *ListMembersQuery {
	return &ListMembersQuery{
		leagueRepo: leagueRepo,
		registry:   registry,
	}
}

// Execute はメンバー一覧取得を実行します
func (q *ListMembersQuery) Execute(ctx context.Context, input ListMembersInput) (*ListMembersOutput, error) {
	// 1. リーグの存在確認
	if _, err := q.leagueRepo.FindByID(ctx, input.LeagueID); err != nil {
		return nil, err
	}

	// 2. 要求者がメンバーかどうか確認
	role, err := q.registry.RoleOf(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(role, authz.OperationViewMembers, authz.NoRole); err != nil {
		return nil, err
	}

	// 3. 絞り込み条件とページングの正規化
	filter := entity.MemberFilter{
		Tier:     strings.TrimSpace(input.Tier),
		Position: strings.ToLower(strings.TrimSpace(input.Position)),
	}
	if input.Role != "" {
		r, err := valueobject.NewLeagueRole(input.Role)
		if err != nil {
			return nil, apperror.NewFieldValidationError("role", err.Error())
		}
		filter.Role = &r
	}

	page, limit := normalizePaging(input.Page, input.Limit)

	// 4. メンバー一覧と集計を取得
	members, total, err := q.registry.ListMembers(ctx, input.LeagueID, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	stats, err := q.registry.Stats(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*entity.MemberWithProfile{}
	}

	return &ListMembersOutput{
		Members: members,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Stats:   stats,
	}, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultMembersPage
	}
	if limit < 1 {
		limit = DefaultMembersLimit
	}
	if limit > MaxMembersLimit {
		limit = MaxMembersLimit
	}
	return page, limit
}
