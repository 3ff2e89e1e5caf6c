package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// DeleteLeagueInput はリーグ削除の入力を定義します
type DeleteLeagueInput struct {
	LeagueID uuid.UUID
	ActorID  uuid.UUID
}

// DeleteLeagueCommand はリーグ削除コマンドです
type DeleteLeagueCommand struct {
	leagueRepo      repository.LeagueRepository
	registry        service.MembershipRegistry
	joinRequestRepo repository.JoinRequestRepository
	txManager       repository.TransactionManager
	activity        service.ActivityRecorder
	clock           clockwork.Clock
}

// NewDeleteLeagueCommand は新しいDeleteLeagueCommandを作成します
func NewDeleteLeagueCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	joinRequestRepo repository.JoinRequestRepository,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *DeleteLeagueCommand {
	return &DeleteLeagueCommand{
		leagueRepo:      leagueRepo,
		registry:        registry,
		joinRequestRepo: joinRequestRepo,
		txManager:       txManager,
		activity:        activity,
		clock:           clock,
	}
}

// Execute はリーグ削除を実行します
func (c *DeleteLeagueCommand) Execute(ctx context.Context, input DeleteLeagueInput) error {
	// 1. リーグの存在確認
	league, err := c.leagueRepo.FindByID(ctx, input.LeagueID)
	if err != nil {
		return err
	}

	// 2. トランザクションで関連データごと削除
	// オーナー権限はロックを取って確認し、同時に降格された場合は拒否する
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		role, err := c.registry.LockRole(ctx, input.LeagueID, input.ActorID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(role, authz.OperationDeleteLeague, authz.NoRole); err != nil {
			return err
		}

		if err := c.joinRequestRepo.DeleteByLeagueID(ctx, league.ID); err != nil {
			return err
		}
		if err := c.registry.RemoveAll(ctx, league.ID); err != nil {
			return err
		}
		return c.leagueRepo.Delete(ctx, league.ID)
	})
	if err != nil {
		return err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityLeagueDeleted, league.ID, input.ActorID, c.clock.Now()).
		WithDetail("name", league.Name.Value()))
	logger.Info(ctx, "league deleted", "league_id", league.ID)

	return nil
}
