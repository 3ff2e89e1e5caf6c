package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// SubmitPolicy は参加申請受付のポリシーを定義します
type SubmitPolicy struct {
	// EnforceAccepting がtrueの場合、accepting=falseのリーグへの申請をConflictで拒否します
	// falseの場合は申請を受け付け、出力のLeagueAcceptingで状態を伝えます
	EnforceAccepting bool
}

// SubmitJoinRequestInput は参加申請の入力を定義します
type SubmitJoinRequestInput struct {
	LeagueID    uuid.UUID
	UserID      uuid.UUID // 申請対象のユーザー
	RequestedBy uuid.UUID // 認証済みの呼び出しユーザー
	Tier        string
	Positions   []string
	Message     string
}

// SubmitJoinRequestOutput は参加申請の出力を定義します
type SubmitJoinRequestOutput struct {
	Request         *entity.JoinRequest
	LeagueAccepting bool
}

// SubmitJoinRequestCommand は参加申請コマンドです
type SubmitJoinRequestCommand struct {
	leagueRepo      repository.LeagueRepository
	registry        service.MembershipRegistry
	joinRequestRepo repository.JoinRequestRepository
	activity        service.ActivityRecorder
	clock           clockwork.Clock
	policy          SubmitPolicy
}

// NewSubmitJoinRequestCommand は新しいSubmitJoinRequestCommandを作成します
func NewSubmitJoinRequestCommand(
	leagueRepo repository.LeagueRepository,
	registry service.MembershipRegistry,
	joinRequestRepo repository.JoinRequestRepository,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
	policy SubmitPolicy,
) *SubmitJoinRequestCommand {
	return &SubmitJoinRequestCommand{
		leagueRepo:      leagueRepo,
		registry:        registry,
		joinRequestRepo: joinRequestRepo,
		activity:        activity,
		clock:           clock,
		policy:          policy,
	}
}

// Execute は参加申請を実行します
func (c *SubmitJoinRequestCommand) Execute(ctx context.Context, input SubmitJoinRequestInput) (*SubmitJoinRequestOutput, error) {
	// 1. 本人確認
	if input.RequestedBy == uuid.Nil || input.RequestedBy != input.UserID {
		return nil, apperror.NewUnauthorizedError("join requests can only be submitted for yourself")
	}

	// 2. 入力の検証
	message, err := valueobject.NewJoinMessage(input.Message)
	if err != nil {
		return nil, fieldError("message", err)
	}
	tier, err := valueobject.NewTier(input.Tier)
	if err != nil {
		return nil, fieldError("tier", err)
	}
	positions, err := valueobject.NewPositions(input.Positions)
	if err != nil {
		return nil, fieldError("positions", err)
	}

	// 3. リーグの存在と受付状態の確認
	league, err := c.leagueRepo.FindByID(ctx, input.LeagueID)
	if err != nil {
		return nil, err
	}
	if c.policy.EnforceAccepting && !league.Accepting {
		return nil, apperror.NewConflictError("league is not accepting join requests")
	}

	// 4. 既存メンバーでないことの確認
	role, err := c.registry.RoleOf(ctx, input.LeagueID, input.UserID)
	if err != nil {
		return nil, err
	}
	if role.IsValid() {
		return nil, apperror.NewConflictError("user is already a member of this league")
	}

	// 5. 保留中の申請が無いことの確認
	// 競合時は永続化層の部分一意インデックスがConflictを返す
	existing, err := c.joinRequestRepo.FindPendingByLeagueAndUser(ctx, input.LeagueID, input.UserID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("a pending join request already exists for this league")
	}

	// 6. 申請の作成
	now := c.clock.Now()
	request := entity.NewJoinRequest(input.LeagueID, input.UserID, message, tier, positions, now)
	if err := c.joinRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityJoinRequestSubmitted, input.LeagueID, input.UserID, now).
		WithJoinRequest(request.ID))
	logger.Info(ctx, "join request submitted",
		"league_id", input.LeagueID,
		"join_request_id", request.ID,
		"league_accepting", league.Accepting,
	)

	return &SubmitJoinRequestOutput{
		Request:         request,
		LeagueAccepting: league.Accepting,
	}, nil
}
