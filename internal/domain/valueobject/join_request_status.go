package valueobject

import "errors"

var (
	ErrInvalidJoinRequestStatus = errors.New("invalid join request status")
)

// JoinRequestStatus は参加申請の状態を表す値オブジェクト
// 遷移は pending → approved | rejected の一方向のみ
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusApproved JoinRequestStatus = "approved"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

// NewJoinRequestStatus は文字列からJoinRequestStatusを生成します
func NewJoinRequestStatus(status string) (JoinRequestStatus, error) {
	s := JoinRequestStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidJoinRequestStatus
	}
	return s, nil
}

// IsValid は状態が有効かを判定します
func (s JoinRequestStatus) IsValid() bool {
	switch s {
	case JoinRequestStatusPending, JoinRequestStatusApproved, JoinRequestStatusRejected:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (s JoinRequestStatus) String() string {
	return string(s)
}

// IsPending は保留中かを判定します
func (s JoinRequestStatus) IsPending() bool {
	return s == JoinRequestStatusPending
}

// IsFinal は最終状態かを判定します
func (s JoinRequestStatus) IsFinal() bool {
	return s == JoinRequestStatusApproved || s == JoinRequestStatusRejected
}

// CanTransitionTo は指定状態へ遷移可能かを判定します
func (s JoinRequestStatus) CanTransitionTo(next JoinRequestStatus) bool {
	return s.IsPending() && next.IsFinal()
}
