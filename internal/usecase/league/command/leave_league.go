package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
)

// LeaveLeagueInput はリーグ脱退の入力を定義します
type LeaveLeagueInput struct {
	LeagueID uuid.UUID
	UserID   uuid.UUID
}

// LeaveLeagueCommand はリーグ脱退コマンドです
type LeaveLeagueCommand struct {
	registry service.MembershipRegistry
	activity service.ActivityRecorder
	clock    clockwork.Clock
}

// NewLeaveLeagueCommand は新しいLeaveLeagueCommandを作成します
func NewLeaveLeagueCommand(
	registry service.MembershipRegistry,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *LeaveLeagueCommand {
	return &LeaveLeagueCommand{
		registry: registry,
		activity: activity,
		clock:    clock,
	}
}

// Execute はリーグ脱退を実行します
func (c *LeaveLeagueCommand) Execute(ctx context.Context, input LeaveLeagueInput) error {
	// 1. メンバーシップの取得
	membership, err := c.registry.GetMembership(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return err
	}

	// 2. 脱退可否の確認（Ownerは所有権譲渡が必要）
	if err := authz.Authorize(membership.Role, authz.OperationLeaveLeague, authz.NoRole); err != nil {
		return err
	}

	// 3. メンバーシップの削除
	if _, err := c.registry.RemoveMember(ctx, input.LeagueID, input.UserID); err != nil {
		return err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityMemberLeft, input.LeagueID, input.UserID, c.clock.Now()).
		WithDetail("role", membership.Role.String()))

	return nil
}
