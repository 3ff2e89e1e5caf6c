package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// ChangeMemberRoleInput はロール変更の入力を定義します
type ChangeMemberRoleInput struct {
	LeagueID     uuid.UUID
	ActorID      uuid.UUID
	TargetUserID uuid.UUID
	NewRole      string
}

// ChangeMemberRoleOutput はロール変更の出力を定義します
type ChangeMemberRoleOutput struct {
	Membership *entity.Membership
	Changed    bool
}

// ChangeMemberRoleCommand はロール変更コマンドです
type ChangeMemberRoleCommand struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
	txManager  repository.TransactionManager
	activity   service.ActivityRecorder
	clock      clockwork.Clock
}

// NewChangeMemberRoleCommand は新しいChangeMemberRoleCommandを作成します
func NewChangeMemberRoleCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *ChangeMemberRoleCommand {
	return &ChangeMemberRoleCommand{
		leagueRepo: leagueRepo,
		registry:   registry,
		txManager:  txManager,
		activity:   activity,
		clock:      clock,
	}
}

// Execute はロール変更を実行します
func (c *ChangeMemberRoleCommand) Execute(ctx context.Context, input ChangeMemberRoleInput) (*ChangeMemberRoleOutput, error) {
	// 1. ロールの検証
	newRole, err := valueobject.NewLeagueRole(input.NewRole)
	if err != nil {
		return nil, fieldError("role", err)
	}

	// 2. リーグの存在確認
	if _, err := c.leagueRepo.FindByID(ctx, input.LeagueID); err != nil {
		return nil, err
	}

	// 3. 操作者の権限確認から変更までを1つのトランザクションで行う
	// 操作者の行をロックするため、所有権譲渡で降格された元オーナーは変更できない
	var (
		previous   valueobject.LeagueRole
		membership *entity.Membership
		changed    bool
	)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		actorRole, err := c.registry.LockRole(ctx, input.LeagueID, input.ActorID)
		if err != nil {
			return err
		}
		if !actorRole.IsOwner() {
			return authz.Authorize(actorRole, authz.OperationChangeMemberRole, authz.NoRole)
		}

		// 4. 対象メンバーの取得とロール遷移の確認
		target, err := c.registry.GetMembership(ctx, input.LeagueID, input.TargetUserID)
		if err != nil {
			return err
		}
		if !authz.CanAssignRole(actorRole, target.Role, newRole) {
			if newRole.IsOwner() {
				return apperror.NewForbiddenError("cannot grant the owner role; transfer ownership instead")
			}
			return authz.Authorize(actorRole, authz.OperationChangeMemberRole, target.Role)
		}

		// 5. ロール変更（同一ロールは変更なしで成功）
		previous = target.Role
		membership, changed, err = c.registry.ChangeRole(ctx, input.LeagueID, input.TargetUserID, newRole)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityMemberRoleChanged, input.LeagueID, input.ActorID, c.clock.Now()).
			WithTarget(input.TargetUserID).
			WithDetail("from", previous.String()).
			WithDetail("to", newRole.String()))
	}

	return &ChangeMemberRoleOutput{
		Membership: membership,
		Changed:    changed,
	}, nil
}
