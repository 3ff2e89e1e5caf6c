package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// MembershipRegistry は (league, user, role) の組を管理するドメインサービス
// 単一オーナーの不変条件はここと永続化層の一意制約の両方で守る
type MembershipRegistry interface {
	// AddMember はメンバーを追加します
	AddMember(ctx context.Context, leagueID, userID uuid.UUID, role valueobject.LeagueRole, joinedAt time.Time) (*entity.Membership, error)

	// RemoveMember はメンバーを削除し、削除したメンバーシップを返します
	RemoveMember(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error)

	// ChangeRole はロールを変更します。同じロールの指定は変更なしで成功します
	ChangeRole(ctx context.Context, leagueID, userID uuid.UUID, newRole valueobject.LeagueRole) (*entity.Membership, bool, error)

	// GetMembership はメンバーシップを取得します
	GetMembership(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error)

	// RoleOf はユーザーのロールを返します。メンバーでない場合は空のロールを返します
	RoleOf(ctx context.Context, leagueID, userID uuid.UUID) (valueobject.LeagueRole, error)

	// LockRole はメンバーシップ行をロックしてロールを返します。トランザクション内で呼び出すこと
	// コミットまで所有権譲渡による降格は待たされる
	LockRole(ctx context.Context, leagueID, userID uuid.UUID) (valueobject.LeagueRole, error)

	// ListMembers は加入日時順のメンバー一覧と絞り込み後の総件数を返します
	ListMembers(ctx context.Context, leagueID uuid.UUID, filter entity.MemberFilter, limit, offset int) ([]*entity.MemberWithProfile, int, error)

	// Stats はリーグ全体のメンバー集計を返します
	Stats(ctx context.Context, leagueID uuid.UUID) (entity.MemberStats, error)

	// SwapOwner はownerとadminのロールを入れ替えます。トランザクション内で呼び出すこと
	SwapOwner(ctx context.Context, leagueID, ownerID, successorID uuid.UUID) error

	// RemoveAll はリーグの全メンバーシップを削除します。リーグ削除時のみ使用する
	RemoveAll(ctx context.Context, leagueID uuid.UUID) error
}

// membershipRegistryImpl はMembershipRegistryの実装
type membershipRegistryImpl struct {
	membershipRepo repository.MembershipRepository
}

// NewMembershipRegistry は新しいMembershipRegistryを作成します
func NewMembershipRegistry(membershipRepo repository.MembershipRepository) MembershipRegistry {
	return &membershipRegistryImpl{membershipRepo: membershipRepo}
}

// AddMember はメンバーを追加します
func (s *membershipRegistryImpl) AddMember(
	ctx context.Context,
	leagueID, userID uuid.UUID,
	role valueobject.LeagueRole,
	joinedAt time.Time,
) (*entity.Membership, error) {
	if !role.IsValid() {
		return nil, apperror.NewFieldValidationError("role", valueobject.ErrInvalidLeagueRole.Error())
	}

	exists, err := s.membershipRepo.Exists(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("user is already a member of this league")
	}

	if role.IsOwner() {
		ownerExists, err := s.membershipRepo.OwnerExists(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		if ownerExists {
			return nil, apperror.NewInvariantViolationError("league already has an owner")
		}
	}

	membership := entity.NewMembership(leagueID, userID, role, joinedAt)
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// RemoveMember はメンバーを削除します
func (s *membershipRegistryImpl) RemoveMember(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	membership, err := s.membershipRepo.FindByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	// オーナーは直接削除できない（先に所有権譲渡が必要）
	if membership.IsOwner() {
		return nil, apperror.NewForbiddenError("cannot remove the owner; transfer ownership first")
	}

	if err := s.membershipRepo.Delete(ctx, membership.ID); err != nil {
		return nil, err
	}
	return membership, nil
}

// ChangeRole はロールを変更します
func (s *membershipRegistryImpl) ChangeRole(
	ctx context.Context,
	leagueID, userID uuid.UUID,
	newRole valueobject.LeagueRole,
) (*entity.Membership, bool, error) {
	if !newRole.IsValid() {
		return nil, false, apperror.NewFieldValidationError("role", valueobject.ErrInvalidLeagueRole.Error())
	}

	membership, err := s.membershipRepo.FindByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		return nil, false, err
	}

	if membership.IsOwner() || newRole.IsOwner() {
		return nil, false, apperror.NewForbiddenError("ownership can only change through ownership transfer")
	}

	if membership.Role == newRole {
		return membership, false, nil
	}

	membership.ChangeRole(newRole)
	if err := s.membershipRepo.UpdateRole(ctx, membership); err != nil {
		return nil, false, err
	}
	return membership, true, nil
}

// GetMembership はメンバーシップを取得します
func (s *membershipRegistryImpl) GetMembership(ctx context.Context, leagueID, userID uuid.UUID) (*entity.Membership, error) {
	return s.membershipRepo.FindByLeagueAndUser(ctx, leagueID, userID)
}

// RoleOf はユーザーのロールを返します
func (s *membershipRegistryImpl) RoleOf(ctx context.Context, leagueID, userID uuid.UUID) (valueobject.LeagueRole, error) {
	membership, err := s.membershipRepo.FindByLeagueAndUser(ctx, leagueID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return membership.Role, nil
}

// LockRole は行ロック付きでユーザーのロールを返します
func (s *membershipRegistryImpl) LockRole(ctx context.Context, leagueID, userID uuid.UUID) (valueobject.LeagueRole, error) {
	membership, err := s.membershipRepo.FindByLeagueAndUserForUpdate(ctx, leagueID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return membership.Role, nil
}

// ListMembers はメンバー一覧を返します
func (s *membershipRegistryImpl) ListMembers(
	ctx context.Context,
	leagueID uuid.UUID,
	filter entity.MemberFilter,
	limit, offset int,
) ([]*entity.MemberWithProfile, int, error) {
	return s.membershipRepo.ListWithProfiles(ctx, leagueID, filter, limit, offset)
}

// Stats はリーグ全体のメンバー集計を返します
func (s *membershipRegistryImpl) Stats(ctx context.Context, leagueID uuid.UUID) (entity.MemberStats, error) {
	return s.membershipRepo.Stats(ctx, leagueID)
}

// SwapOwner はownerとadminのロールを入れ替えます
// 降格を先に行うことで単一オーナーの部分一意インデックスに抵触しない
func (s *membershipRegistryImpl) SwapOwner(ctx context.Context, leagueID, ownerID, successorID uuid.UUID) error {
	if err := s.membershipRepo.DemoteOwner(ctx, leagueID, ownerID); err != nil {
		return err
	}
	return s.membershipRepo.PromoteAdminToOwner(ctx, leagueID, successorID)
}

// RemoveAll はリーグの全メンバーシップを削除します
func (s *membershipRegistryImpl) RemoveAll(ctx context.Context, leagueID uuid.UUID) error {
	return s.membershipRepo.DeleteByLeagueID(ctx, leagueID)
}
