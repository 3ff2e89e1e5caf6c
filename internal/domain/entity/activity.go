package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction はアクティビティフィードのアクション種別を定義します
type ActivityAction string

const (
	ActivityLeagueCreated              ActivityAction = "league.created"
	ActivityLeagueUpdated              ActivityAction = "league.updated"
	ActivityLeagueDeleted              ActivityAction = "league.deleted"
	ActivityLeagueOwnershipTransferred ActivityAction = "league.ownership_transferred"

	ActivityJoinRequestSubmitted ActivityAction = "join_request.submitted"
	ActivityJoinRequestApproved  ActivityAction = "join_request.approved"
	ActivityJoinRequestRejected  ActivityAction = "join_request.rejected"
	ActivityJoinRequestWithdrawn ActivityAction = "join_request.withdrawn"

	ActivityMemberRoleChanged ActivityAction = "member.role_changed"
	ActivityMemberRemoved     ActivityAction = "member.removed"
	ActivityMemberLeft        ActivityAction = "member.left"
)

// ActivityEvent はコミット済みの状態変更を表すイベント
type ActivityEvent struct {
	ID            uuid.UUID      `json:"id"`
	Action        ActivityAction `json:"action"`
	LeagueID      uuid.UUID      `json:"league_id"`
	ActorID       uuid.UUID      `json:"actor_id"`
	TargetUserID  *uuid.UUID     `json:"target_user_id,omitempty"`
	JoinRequestID *uuid.UUID     `json:"join_request_id,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	RequestID     string         `json:"request_id,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

// NewActivityEvent は新しいアクティビティイベントを作成します
func NewActivityEvent(action ActivityAction, leagueID, actorID uuid.UUID, occurredAt time.Time) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.New(),
		Action:     action,
		LeagueID:   leagueID,
		ActorID:    actorID,
		OccurredAt: occurredAt,
	}
}

// WithTarget は対象ユーザーを設定したイベントを返します
func (e ActivityEvent) WithTarget(userID uuid.UUID) ActivityEvent {
	e.TargetUserID = &userID
	return e
}

// WithJoinRequest は対象の参加申請を設定したイベントを返します
func (e ActivityEvent) WithJoinRequest(requestID uuid.UUID) ActivityEvent {
	e.JoinRequestID = &requestID
	return e
}

// WithDetail は詳細情報を追加したイベントを返します
func (e ActivityEvent) WithDetail(key string, value any) ActivityEvent {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}
