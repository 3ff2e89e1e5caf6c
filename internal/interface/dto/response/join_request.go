package response

import (
	"time"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// JoinRequestResponse は参加申請レスポンスです
type JoinRequestResponse struct {
	ID          string     `json:"id"`
	LeagueID    string     `json:"league_id"`
	UserID      string     `json:"user_id"`
	Message     string     `json:"message"`
	Tier        string     `json:"tier"`
	Positions   []string   `json:"positions"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
}

// PendingJoinRequestResponse は申請者プロフィール付きの参加申請レスポンスです
type PendingJoinRequestResponse struct {
	JoinRequestResponse
	Profile *PlayerProfileResponse `json:"profile"`
}

// SubmitJoinRequestResponse は参加申請作成レスポンスです
type SubmitJoinRequestResponse struct {
	Request         JoinRequestResponse `json:"request"`
	LeagueAccepting bool                `json:"league_accepting"`
}

// ResolveJoinRequestResponse は参加申請の承認・却下レスポンスです
type ResolveJoinRequestResponse struct {
	Request    JoinRequestResponse `json:"request"`
	Membership *MembershipResponse `json:"membership,omitempty"`
}

// ToJoinRequestResponse はエンティティからレスポンスに変換します
func ToJoinRequestResponse(r *entity.JoinRequest) JoinRequestResponse {
	positions := r.Positions
	if positions == nil {
		positions = []string{}
	}
	resp := JoinRequestResponse{
		ID:          r.ID.String(),
		LeagueID:    r.LeagueID.String(),
		UserID:      r.UserID.String(),
		Message:     r.Message,
		Tier:        r.Tier,
		Positions:   positions,
		Status:      r.Status.String(),
		SubmittedAt: r.SubmittedAt,
		ResolvedAt:  r.ResolvedAt,
	}
	if r.ResolvedBy != nil {
		resolvedBy := r.ResolvedBy.String()
		resp.ResolvedBy = &resolvedBy
	}
	return resp
}

// ToPendingJoinRequestListResponse は申請一覧をレスポンスに変換します
func ToPendingJoinRequestListResponse(requests []*entity.JoinRequestWithProfile) []PendingJoinRequestResponse {
	result := make([]PendingJoinRequestResponse, len(requests))
	for i, r := range requests {
		result[i] = PendingJoinRequestResponse{
			JoinRequestResponse: ToJoinRequestResponse(r.Request),
			Profile:             ToPlayerProfileResponse(r.Profile),
		}
	}
	return result
}

// ToResolveJoinRequestResponse は承認・却下結果をレスポンスに変換します
func ToResolveJoinRequestResponse(r *entity.JoinRequest, m *entity.Membership) ResolveJoinRequestResponse {
	resp := ResolveJoinRequestResponse{Request: ToJoinRequestResponse(r)}
	if m != nil {
		membership := ToMembershipResponse(m)
		resp.Membership = &membership
	}
	return resp
}
