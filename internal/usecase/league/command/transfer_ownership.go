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
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// TransferOwnershipInput は所有権譲渡の入力を定義します
type TransferOwnershipInput struct {
	LeagueID       uuid.UUID
	CurrentOwnerID uuid.UUID
	SuccessorID    uuid.UUID
}

// TransferOwnershipOutput は所有権譲渡の出力を定義します
type TransferOwnershipOutput struct {
	League             *entity.League
	NewOwnerMembership *entity.Membership
	OldOwnerMembership *entity.Membership
}

// TransferOwnershipCommand は所有権譲渡コマンドです
type TransferOwnershipCommand struct {
	leagueRepo repository.LeagueRepository
	registry   service.MembershipRegistry
	txManager  repository.TransactionManager
	activity   service.ActivityRecorder
	clock      clockwork.Clock
}

// NewTransferOwnershipCommand は新しいTransferOwnershipCommandを作成します
func NewTransferOwnershipCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *TransferOwnershipCommand {
	return &TransferOwnershipCommand{
		leagueRepo: leagueRepo,
		registry:   registry,
		txManager:  txManager,
		activity:   activity,
		clock:      clock,
	}
}

// Execute は所有権譲渡を実行します
// 前提条件をすべて確認してから、降格と昇格を1つのトランザクションで行う
func (c *TransferOwnershipCommand) Execute(ctx context.Context, input TransferOwnershipInput) (*TransferOwnershipOutput, error) {
	// 1. リーグの取得
	league, err := c.leagueRepo.FindByID(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}

	// 2. 操作者がメンバーであることの確認
	actor, err := c.registry.GetMembership(ctx, input.LeagueID, input.CurrentOwnerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewForbiddenError("not a member of this league")
		}
		return nil, err
	}

	// 3. 自分自身への譲渡は不可
	if input.CurrentOwnerID == input.SuccessorID {
		return nil, apperror.NewFieldValidationError("successor_id", "cannot transfer ownership to yourself")
	}

	// 4. 譲渡先が同じリーグのAdminであることの確認
	successor, err := c.registry.GetMembership(ctx, input.LeagueID, input.SuccessorID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewFieldValidationError("successor_id", "successor must be a member of the league")
		}
		return nil, err
	}
	if !successor.IsAdmin() {
		return nil, apperror.NewFieldValidationError("successor_id", "successor must be an admin; promote them first")
	}

	// 5. 操作者がOwnerであることの確認
	if err := authz.Authorize(actor.Role, authz.OperationTransferOwnership, successor.Role); err != nil {
		return nil, err
	}

	// 6. トランザクションでロールを入れ替える
	// 降格はrole=ownerを条件とするため、同時に譲渡した場合は片方がConflictになる
	now := c.clock.Now()
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.registry.SwapOwner(ctx, input.LeagueID, input.CurrentOwnerID, input.SuccessorID); err != nil {
			return err
		}
		return c.leagueRepo.UpdateOwner(ctx, input.LeagueID, input.SuccessorID, now)
	})
	if err != nil {
		return nil, err
	}

	league.TransferOwnership(input.SuccessorID, now)
	actor.DemoteToAdmin()
	successor.PromoteToOwner()

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityLeagueOwnershipTransferred, input.LeagueID, input.CurrentOwnerID, now).
		WithTarget(input.SuccessorID).
		WithDetail("previous_owner_role", valueobject.LeagueRoleAdmin.String()))
	logger.Info(ctx, "ownership transferred",
		"league_id", input.LeagueID,
		"from", input.CurrentOwnerID,
		"to", input.SuccessorID,
	)

	return &TransferOwnershipOutput{
		League:             league,
		NewOwnerMembership: successor,
		OldOwnerMembership: actor,
	}, nil
}
