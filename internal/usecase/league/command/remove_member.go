package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
)

// RemoveMemberInput はメンバー削除の入力を定義します
type RemoveMemberInput struct {
	LeagueID     uuid.UUID
	ActorID      uuid.UUID
	TargetUserID uuid.UUID
}

// RemoveMemberCommand はメンバー削除コマンドです
type RemoveMemberCommand struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
	activity   service.ActivityRecorder
	clock      clockwork.Clock
}

// NewRemoveMemberCommand は新しいRemoveMemberCommandを作成します
func NewRemoveMemberCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *RemoveMemberCommand {
	return &RemoveMemberCommand{
		leagueRepo: leagueRepo,
		registry:   registry,
		activity:   activity,
		clock:      clock,
	}
}

// Execute はメンバー削除を実行します
func (c *RemoveMemberCommand) Execute(ctx context.Context, input RemoveMemberInput) error {
	// 1. リーグの存在確認
	if _, err := c.leagueRepo.FindByID(ctx, input.LeagueID); err != nil {
		return err
	}

	// 2. 操作者の権限確認（Owner/Adminのみ）
	actorRole, err := c.registry.RoleOf(ctx, input.LeagueID, input.ActorID)
	if err != nil {
		return err
	}
	if !actorRole.IsStaff() {
		return authz.Authorize(actorRole, authz.OperationRemoveMember, authz.NoRole)
	}

	// 3. 対象メンバーの取得（Ownerは削除不可）
	target, err := c.registry.GetMembership(ctx, input.LeagueID, input.TargetUserID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actorRole, authz.OperationRemoveMember, target.Role); err != nil {
		return err
	}

	// 4. 削除
	if _, err := c.registry.RemoveMember(ctx, input.LeagueID, input.TargetUserID); err != nil {
		return err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityMemberRemoved, input.LeagueID, input.ActorID, c.clock.Now()).
		WithTarget(input.TargetUserID).
		WithDetail("role", target.Role.String()))

	return nil
}
