package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/repository"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/pkg/apperror"
)

// WithdrawJoinRequestInput は参加申請取り下げの入力を定義します
// RequestIDを指定した場合はその申請を、省略した場合はLeagueIDに対する自分の保留中申請を対象とします
type WithdrawJoinRequestInput struct {
	LeagueID  uuid.UUID
	RequestID uuid.UUID
	UserID    uuid.UUID
}

// WithdrawJoinRequestCommand は参加申請取り下げコマンドです
type WithdrawJoinRequestCommand struct {
	joinRequestRepo repository.JoinRequestRepository
	activity        service.ActivityRecorder
	clock           clockwork.Clock
}

// NewWithdrawJoinRequestCommand は新しいWithdrawJoinRequestCommandを作成します
func NewWithdrawJoinRequestCommand(
	joinRequestRepo repository.JoinRequestRepository,
	activity service.ActivityRecorder,
	clock clockwork.Clock,
) *WithdrawJoinRequestCommand {
	return &WithdrawJoinRequestCommand{
		joinRequestRepo: joinRequestRepo,
		activity:        activity,
		clock:           clock,
	}
}

// Execute は参加申請の取り下げを実行します
// 取り下げた申請は終了状態にならず削除されるため、すぐに再申請できる
func (c *WithdrawJoinRequestCommand) Execute(ctx context.Context, input WithdrawJoinRequestInput) error {
	// 1. 対象申請の特定
	request, err := c.findTarget(ctx, input)
	if err != nil {
		return err
	}

	// 2. 申請者本人かつ保留中であることの確認
	if !request.IsSubmittedBy(input.UserID) {
		return apperror.NewForbiddenError("only the submitter can withdraw a join request")
	}
	if !request.IsPending() {
		return apperror.NewConflictError("join request is no longer pending")
	}

	// 3. 削除（status=pendingを条件とする）
	if err := c.joinRequestRepo.DeletePending(ctx, request.ID); err != nil {
		return err
	}

	c.activity.Record(ctx, entity.NewActivityEvent(entity.ActivityJoinRequestWithdrawn, request.LeagueID, input.UserID, c.clock.Now()).
		WithJoinRequest(request.ID))

	return nil
}

func (c *WithdrawJoinRequestCommand) findTarget(ctx context.Context, input WithdrawJoinRequestInput) (*entity.JoinRequest, error) {
	if input.RequestID != uuid.Nil {
		request, err := c.joinRequestRepo.FindByID(ctx, input.RequestID)
		if err != nil {
			return nil, err
		}
		if input.LeagueID != uuid.Nil && request.LeagueID != input.LeagueID {
			return nil, apperror.NewNotFoundError("join request")
		}
		return request, nil
	}

	if input.LeagueID == uuid.Nil {
		return nil, apperror.NewValidationError("league id or request id is required", nil)
	}
	return c.joinRequestRepo.FindPendingByLeagueAndUser(ctx, input.LeagueID, input.UserID)
}
