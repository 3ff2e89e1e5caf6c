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

// ResolveJoinRequestInput は参加申請の承認・却下の入力を定義します
type ResolveJoinRequestInput struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Decision  string
}

// ResolveJoinRequestOutput は参加申請の承認・却下の出力を定義します
type ResolveJoinRequestOutput struct {
	Request    *entity.JoinRequest
	Membership *entity.Membership // 承認時のみ
}

// ResolveJoinRequestCommand は参加申請の承認・却下コマンドです
type ResolveJoinRequestCommand struct {
	joinRequestRepo repository.JoinRequestRepository
	registry        service.MembershipRegistry
	txManager       repository.TransactionManager
	activity        service.ActivityRecorder
	clock           clockwork.Clock
}

// NewResolveJoinRequestCommand は新しいResolveJoinRequestCommandを作成します
func NewResolveJoinRequestCommand(
	joinRequestRepo repository.JoinRequestRepository,
	registry service.MembershipRegistry,
	txManager repository.TransactionManager,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *ResolveJoinRequestCommand {
	return &ResolveJoinRequestCommand{
		joinRequestRepo: joinRequestRepo,
		registry:        registry,
		txManager:       txManager,
		activity:        activity,
		clock:           clock,
	}
}

// Execute は参加申請の承認・却下を実行します
func (c *ResolveJoinRequestCommand) Execute(ctx context.Context, input ResolveJoinRequestInput) (*ResolveJoinRequestOutput, error) {
	// 1. 判定値の検証
	decision, err := valueobject.NewJoinDecision(input.Decision)
	if err != nil {
		return nil, fieldError("decision", err)
	}

	// 2. 申請の取得
	request, err := c.joinRequestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	// 3. 権限確認（申請先リーグのOwner/Adminのみ）
	role, err := c.registry.RoleOf(ctx, request.LeagueID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(role, authz.OperationResolveJoinRequest, authz.NoRole); err != nil {
		return nil, err
	}

	// 4. 状態遷移
	now := c.clock.Now()
	if err := request.Resolve(decision, input.ActorID, now); err != nil {
		return nil, apperror.NewConflictError("join request is no longer pending")
	}

	// 5. トランザクションで申請の確定とメンバー追加を行う
	// 申請の更新はstatus=pendingを条件とするため、同時に解決した場合は片方がConflictになる
	var membership *entity.Membership
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.joinRequestRepo.ResolvePending(ctx, request); err != nil {
			return err
		}
		if decision != valueobject.JoinDecisionApprove {
			return nil
		}
		m, err := c.registry.AddMember(ctx, request.LeagueID, request.UserID, valueobject.LeagueRoleMember, now)
		if err != nil {
			return err
		}
		membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := entity.ActivityJoinRequestRejected
	if decision == valueobject.JoinDecisionApprove {
		action = entity.ActivityJoinRequestApproved
	}
	c.activity.Record(ctx, entity.NewActivityEvent(action, request.LeagueID, input.ActorID, now).
		WithTarget(request.UserID).
		WithJoinRequest(request.ID))
	logger.Info(ctx, "join request resolved",
		"league_id", request.LeagueID,
		"join_request_id", request.ID,
		"decision", decision.String(),
	)

	return &ResolveJoinRequestOutput{
		Request:    request,
		Membership: membership,
	}, nil
}
