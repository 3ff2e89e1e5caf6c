package valueobject

import "errors"

var (
	ErrInvalidJoinDecision = errors.New("invalid join decision")
)

// JoinDecision は参加申請に対する判定を表す値オブジェクト
type JoinDecision string

const (
	JoinDecisionApprove JoinDecision = "approve"
	JoinDecisionReject  JoinDecision = "reject"
)

// NewJoinDecision は文字列からJoinDecisionを生成します
func NewJoinDecision(decision string) (JoinDecision, error) {
	d := JoinDecision(decision)
	if !d.IsValid() {
		return "", ErrInvalidJoinDecision
	}
	return d, nil
}

// IsValid は判定値が有効かを判定します
func (d JoinDecision) IsValid() bool {
	return d == JoinDecisionApprove || d == JoinDecisionReject
}

// String は文字列を返します
func (d JoinDecision) String() string {
	return string(d)
}

// ResultingStatus は判定後の申請状態を返します
func (d JoinDecision) ResultingStatus() JoinRequestStatus {
	if d == JoinDecisionApprove {
		return JoinRequestStatusApproved
	}
	return JoinRequestStatusRejected
}
