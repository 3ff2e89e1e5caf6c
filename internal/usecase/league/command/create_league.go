package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// CreateLeagueInput はリーグ作成の入力を定義します
type CreateLeagueInput struct {
	Name        string
	Description string
	Region      string
	Type        string
	Rules       []string
	OwnerID     uuid.UUID
}

// CreateLeagueOutput はリーグ作成の出力を定義します
type CreateLeagueOutput struct {
	League     *entity.League
	Membership *entity.Membership
}

// CreateLeagueCommand はリーグ作成コマンドです
type CreateLeagueCommand struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
	txManager  repository.TransactionManager
	activity   service.ActivityRecorder
	clock      clockwork.Clock
}

// NewCreateLeagueCommand は新しいCreateLeagueCommandを作成します
func NewCreateLeagueCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *CreateLeagueCommand {
	return &CreateLeagueCommand{
		leagueRepo: leagueRepo,
		registry:   registry,
		txManager:  txManager,
		activity:   activity,
		clock:      clock,
	}
}

// Execute はリーグ作成を実行します
func (c *CreateLeagueCommand) Execute(ctx context.Context, input CreateLeagueInput) (*CreateLeagueOutput, error) {
	// 1. 入力の検証
	name, err := valueobject.NewLeagueName(input.Name)
	if err != nil {
		return nil, fieldError("name", err)
	}
	description, err := valueobject.NewDescription(input.Description)
	if err != nil {
		return nil, fieldError("description", err)
	}
	region, err := valueobject.NewRegion(input.Region)
	if err != nil {
		return nil, fieldError("region", err)
	}
	leagueType, err := valueobject.NewLeagueType(input.Type)
	if err != nil {
		return nil, fieldError("type", err)
	}
	rules, err := valueobject.NewLeagueRules(input.Rules)
	if err != nil {
		return nil, fieldError("rules", err)
	}

	// 2. リーグエンティティの作成
	now := c.clock.Now()
	league := entity.NewLeague(name, description, region, leagueType, rules, input.OwnerID, now)

	// 3. トランザクションでリーグとオーナーのメンバーシップを作成
	var membership *entity.Membership
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.leagueRepo.Create(ctx, league); err != nil {
			return err
		}
		m, err := c.registry.AddMember(ctx, league.ID, input.OwnerID, valueobject.LeagueRoleOwner, now)
		if err != nil {
			return err
		}
		membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityLeagueCreated, league.ID, input.OwnerID, now).
		WithDetail("name", league.Name.Value()))
	logger.Info(ctx, "league created", "league_id", league.ID, "owner_id", input.OwnerID)

	return &CreateLeagueOutput{
		League:     league,
		Membership: membership,
	}, nil
}
