package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

var (
	ErrJoinRequestNotPending = errors.New("join request is not pending")
)

// JoinRequest は参加申請エンティティ
// (LeagueID, UserID) ごとにpendingは最大1件
type JoinRequest struct {
	ID          uuid.UUID
	LeagueID    uuid.UUID
	UserID      uuid.UUID
	Message     string
	Tier        string
	Positions   []string
	Status      valueobject.JoinRequestStatus
	SubmittedAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID
}

// NewJoinRequest は新しい参加申請を作成します
func NewJoinRequest(
	leagueID uuid.UUID,
	userID uuid.UUID,
	message string,
	tier string,
	positions []string,
	submittedAt time.Time,
) *JoinRequest {
	return &JoinRequest{
		ID:          uuid.New(),
		LeagueID:    leagueID,
		UserID:      userID,
		Message:     message,
		Tier:        tier,
		Positions:   positions,
		Status:      valueobject.JoinRequestStatusPending,
		SubmittedAt: submittedAt,
	}
}

// ReconstructJoinRequest はDBから参加申請を復元します
func ReconstructJoinRequest(
	id uuid.UUID,
	leagueID uuid.UUID,
	userID uuid.UUID,
	message string,
	tier string,
	positions []string,
	status valueobject.JoinRequestStatus,
	submittedAt time.Time,
	resolvedAt *time.Time,
	resolvedBy *uuid.UUID,
) *JoinRequest {
	return &JoinRequest{
		ID:          id,
		LeagueID:    leagueID,
		UserID:      userID,
		Message:     message,
		Tier:        tier,
		Positions:   positions,
		Status:      status,
		SubmittedAt: submittedAt,
		ResolvedAt:  resolvedAt,
		ResolvedBy:  resolvedBy,
	}
}

// IsPending は保留中かを判定します
func (r *JoinRequest) IsPending() bool {
	return r.Status.IsPending()
}

// IsSubmittedBy は指定ユーザーの申請かを判定します
func (r *JoinRequest) IsSubmittedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}

// Resolve は判定を適用して最終状態へ遷移させます
func (r *JoinRequest) Resolve(decision valueobject.JoinDecision, resolvedBy uuid.UUID, now time.Time) error {
	next := decision.ResultingStatus()
	if !r.Status.CanTransitionTo(next) {
		return ErrJoinRequestNotPending
	}
	r.Status = next
	r.ResolvedAt = &now
	r.ResolvedBy = &resolvedBy
	return nil
}

// JoinRequestWithProfile は参加申請と申請者プロフィールを結合した構造体
type JoinRequestWithProfile struct {
	Request *JoinRequest
	Profile *PlayerProfile
}
