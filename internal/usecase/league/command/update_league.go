package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/authz"
	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

// UpdateLeagueInput はリーグ設定更新の入力を定義します
// nilのフィールドは変更しない
type UpdateLeagueInput struct {
	LeagueID    uuid.UUID
	ActorID     uuid.UUID
	Name        *string
	Description *string
	Region      *string
	Type        *string
	Accepting   *bool
	Rules       *[]string
}

// UpdateLeagueOutput はリーグ設定更新の出力を定義します
type UpdateLeagueOutput struct {
	League *entity.League
}

// UpdateLeagueCommand はリーグ設定更新コマンドです
type UpdateLeagueCommand struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
	txManager  repository.TransactionManager
	activity   service.ActivityRecorder
	clock      clockwork.Clock
}

// NewUpdateLeagueCommand は新しいUpdateLeagueCommandを作成します
func NewUpdateLeagueCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *UpdateLeagueCommand {
	return &UpdateLeagueCommand{
		leagueRepo: leagueRepo,
		registry:   registry,
		txManager:  txManager,
		activity:   activity,
		clock:      clock,
	}
}

// Execute はリーグ設定更新を実行します
// 権限確認と読み込みはトランザクション内でロックを取って行い、同時の所有権譲渡や設定変更と直列化する
func (c *UpdateLeagueCommand) Execute(ctx context.Context, input UpdateLeagueInput) (*UpdateLeagueOutput, error) {
	// 1. リーグの存在確認
	if _, err := c.leagueRepo.FindByID(ctx, input.LeagueID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	var (
		league  *entity.League
		changed []string
	)
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 2. 権限確認（メンバーシップ行→リーグ行の順にロックする）
		role, err := c.registry.LockRole(ctx, input.LeagueID, input.ActorID)
		if err != nil {
			return err
		}
		if err := authz.Authorize(role, authz.OperationUpdateLeague, authz.NoRole); err != nil {
			return err
		}

		league, err = c.leagueRepo.FindByIDForUpdate(ctx, input.LeagueID)
		if err != nil {
			return err
		}

		// 3. 変更の適用
		changed, err = applyLeagueChanges(league, input, now)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}

		// 4. 永続化
		return c.leagueRepo.Update(ctx, league)
	})
	if err != nil {
		return nil, err
	}

	if len(changed) > 0 {
		c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityLeagueUpdated, league.ID, input.ActorID, now).
			WithDetail("fields", changed))
	}

	return &UpdateLeagueOutput{League: league}, nil
}

func applyLeagueChanges(league *entity.League, input UpdateLeagueInput, now time.Time) ([]string, error) {
	changed := make([]string, 0, 6)

	if input.Name != nil {
		name, err := valueobject.NewLeagueName(*input.Name)
		if err != nil {
			return nil, fieldError("name", err)
		}
		league.Rename(name, now)
		changed = append(changed, "name")
	}
	if input.Description != nil {
		description, err := valueobject.NewDescription(*input.Description)
		if err != nil {
			return nil, fieldError("description", err)
		}
		league.UpdateDescription(description, now)
		changed = append(changed, "description")
	}
	if input.Region != nil {
		region, err := valueobject.NewRegion(*input.Region)
		if err != nil {
			return nil, fieldError("region", err)
		}
		league.UpdateRegion(region, now)
		changed = append(changed, "region")
	}
	if input.Type != nil {
		leagueType, err := valueobject.NewLeagueType(*input.Type)
		if err != nil {
			return nil, fieldError("type", err)
		}
		league.UpdateType(leagueType, now)
		changed = append(changed, "type")
	}
	if input.Accepting != nil {
		league.SetAccepting(*input.Accepting, now)
		changed = append(changed, "accepting")
	}
	if input.Rules != nil {
		rules, err := valueobject.NewLeagueRules(*input.Rules)
		if err != nil {
			return nil, fieldError("rules", err)
		}
		league.ReplaceRules(rules, now)
		changed = append(changed, "rules")
	}

	return changed, nil
}
