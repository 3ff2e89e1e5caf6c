package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

const membershipConflictMessage = "user is already a member of this league"

// MembershipRepository はリーグメンバーシップリポジトリの実装です
type MembershipRepository struct {
	*database.BaseRepository
}

// NewMembershipRepository は新しいMembershipRepositoryを作成します
func NewMembershipRepository(txManager *database.TxManager) *MembershipRepository {
	return &MembershipRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はメンバーシップを作成します
// 単一オーナーの部分一意インデックスに違反した場合はInvariantViolationを返します
func (r *MembershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	_, err := r.Querier(ctx).Exec(ctx, `
		INSERT INTO league_memberships (id, league_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)`,
		membership.ID, membership.LeagueID, membership.UserID, membership.Role.String(), membership.JoinedAt,
	)
	return r.mapError(err)
}

// UpdateRole はowner以外のメンバーシップのロールを更新します
func (r *MembershipRepository) UpdateRole(ctx context.Context, membership *entity.Membership) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE league_memberships SET role = $2
		WHERE id = $1 AND role <> 'owner'`,
		membership.ID, membership.Role.String(),
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("membership changed concurrently; reload and retry")
	}
	return nil
}

// Delete はowner以外のメンバーシップを削除します
func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, "DELETE FROM league_memberships WHERE id = $1 AND role <> 'owner'", id)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("membership changed concurrently; reload and retry")
	}
	return nil
}

// FindByLeagueAndUser はリーグとユーザーでメンバーシップを検索します
func (r *MembershipRepository) FindByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	return r.findByLeagueAndUser(ctx, leagueID, userID, "")
}

// FindByLeagueAndUserForUpdate はメンバーシップ行をロックして取得します
// DemoteOwnerと同じ行を取り合うため、所有権譲渡と直列化される
func (r *MembershipRepository) FindByLeagueAndUserForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	return r.findByLeagueAndUser(ctx, leagueID, userID, " FOR UPDATE")
}

func (r *MembershipRepository) findByLeagueAndUser(ctx context.Context, leagueID, userID uuid.UUID, lock string) (*entity.Membership, error) {
	var (
		id       uuid.UUID
		role     string
		joinedAt time.Time
	)
	err := r.Querier(ctx).QueryRow(ctx, `
		SELECT id, role, joined_at FROM league_memberships
		WHERE league_id = $1 AND user_id = $2`+lock,
		leagueID, userID,
	).Scan(&id, &role, &joinedAt)
	if err != nil {
		return nil, r.mapError(err)
	}
	return entity.ReconstructMembership(id, leagueID, userID, valueobject.LeagueRole(role), joinedAt), nil
}

// ListWithProfiles は絞り込み後のメンバーを加入順に返し、絞り込み後の総件数を併せて返します
func (r *MembershipRepository) ListWithProfiles(
	ctx context.Context,
	leagueID uuid.UUID,
	filter entity.MemberFilter,
	limit, offset int,
) ([]*entity.MemberWithProfile, int, error) {
	var role *string
	if filter.Role != nil {
		s := filter.Role.String()
		role = &s
	}
	args := []any{leagueID, role, filter.Tier, filter.Position}

	const where = `
		FROM league_memberships m
		LEFT JOIN player_profiles p ON p.user_id = m.user_id
		WHERE m.league_id = $1
		  AND ($2::text IS NULL OR m.role = $2)
		  AND ($3::text = '' OR p.tier = $3)
		  AND ($4::text = '' OR $4 = ANY(p.positions))`

	var total int
	if err := r.Querier(ctx).QueryRow(ctx, "SELECT COUNT(*)"+where, args...).Scan(&total); err != nil {
		return nil, 0, r.mapError(err)
	}

	rows, err := r.Querier(ctx).Query(ctx, `
		SELECT m.id, m.user_id, m.role, m.joined_at,
		       p.user_id, p.display_name, p.tier, p.positions, p.avatar_url, p.updated_at`+where+`
		ORDER BY m.joined_at, m.id
		LIMIT $5 OFFSET $6`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, r.mapError(err)
	}
	defer rows.Close()

	members := make([]*entity.MemberWithProfile, 0, limit)
	for rows.Next() {
		var (
			id, userID       uuid.UUID
			memberRole       string
			joinedAt         time.Time
			profileUserID    *uuid.UUID
			displayName      *string
			tier             *string
			positions        []string
			avatarURL        *string
			profileUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&id, &userID, &memberRole, &joinedAt,
			&profileUserID, &displayName, &tier, &positions, &avatarURL, &profileUpdatedAt,
		); err != nil {
			return nil, 0, r.mapError(err)
		}

		item := &entity.MemberWithProfile{
			Membership: entity.ReconstructMembership(id, leagueID, userID, valueobject.LeagueRole(memberRole), joinedAt),
		}
		if profileUserID != nil {
			item.Profile = &entity.PlayerProfile{
				UserID:      *profileUserID,
				DisplayName: deref(displayName),
				Tier:        deref(tier),
				Positions:   positions,
				AvatarURL:   deref(avatarURL),
			}
			if profileUpdatedAt != nil {
				item.Profile.UpdatedAt = *profileUpdatedAt
			}
		}
		members = append(members, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.mapError(err)
	}
	return members, total, nil
}

// Exists はメンバーシップが存在するかを確認します
func (r *MembershipRepository) Exists(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM league_memberships WHERE league_id = $1 AND user_id = $2)`,
		leagueID, userID,
	).Scan(&exists)
	if err != nil {
		return false, r.mapError(err)
	}
	return exists, nil
}

// OwnerExists はリーグにownerが存在するかを確認します
func (r *MembershipRepository) OwnerExists(ctx context.Context, leagueID uuid.UUID) (bool, error) {
	var exists bool
	err := r.Querier(ctx).QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM league_memberships WHERE league_id = $1 AND role = 'owner')`,
		leagueID,
	).Scan(&exists)
	if err != nil {
		return false, r.mapError(err)
	}
	return exists, nil
}

// Stats はリーグ全体のメンバー数とadmin数を返します
func (r *MembershipRepository) Stats(ctx context.Context, leagueID uuid.UUID) (entity.MemberStats, error) {
	var stats entity.MemberStats
	err := r.Querier(ctx).QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE role = 'admin')
		FROM league_memberships WHERE league_id = $1`,
		leagueID,
	).Scan(&stats.TotalMembers, &stats.AdminCount)
	if err != nil {
		return entity.MemberStats{}, r.mapError(err)
	}
	return stats, nil
}

// DemoteOwner は現在のownerをadminに降格します
// role='owner'を条件とするため、既に降格済みの場合はConflictを返します
func (r *MembershipRepository) DemoteOwner(ctx context.Context, leagueID, ownerID uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE league_memberships SET role = 'admin'
		WHERE league_id = $1 AND user_id = $2 AND role = 'owner'`,
		leagueID, ownerID,
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("ownership changed concurrently; reload and retry")
	}
	return nil
}

// PromoteAdminToOwner はadminをownerに昇格します
// 必ずDemoteOwnerの後に同一トランザクションで呼び出すこと
func (r *MembershipRepository) PromoteAdminToOwner(ctx context.Context, leagueID, userID uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE league_memberships SET role = 'owner'
		WHERE league_id = $1 AND user_id = $2 AND role = 'admin'`,
		leagueID, userID,
	)
	if err != nil {
		return r.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflictError("successor is no longer an admin of this league")
	}
	return nil
}

// DeleteByLeagueID はリーグの全メンバーシップを削除します
func (r *MembershipRepository) DeleteByLeagueID(ctx context.Context, leagueID uuid.UUID) error {
	_, err := r.Querier(ctx).Exec(ctx, "DELETE FROM league_memberships WHERE league_id = $1", leagueID)
	return r.mapError(err)
}

func (r *MembershipRepository) mapError(err error) error {
	return toAppError(r.HandleError(err), "membership", membershipConflictMessage)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
