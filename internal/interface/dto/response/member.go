package response

import (
	"time"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// MembershipResponse はメンバーシップレスポンスです
type MembershipResponse struct {
	ID       string    `json:"id"`
	LeagueID string    `json:"league_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// PlayerProfileResponse はプレイヤープロフィールレスポンスです
type PlayerProfileResponse struct {
	DisplayName string   `json:"display_name"`
	Tier        string   `json:"tier,omitempty"`
	Positions   []string `json:"positions"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
}

// MemberResponse はプロフィール付きメンバーレスポンスです
type MemberResponse struct {
	MembershipResponse
	Profile *PlayerProfileResponse `json:"profile"`
}

// MemberStatsResponse はリーグ全体のメンバー集計です
type MemberStatsResponse struct {
	TotalMembers int `json:"total_members"`
	AdminCount   int `json:"admin_count"`
}

// ChangeMemberRoleResponse はロール変更レスポンスです
type ChangeMemberRoleResponse struct {
	Membership MembershipResponse `json:"membership"`
	Changed    bool               `json:"changed"`
}

// ToMembershipResponse はエンティティからレスポンスに変換します
func ToMembershipResponse(m *entity.Membership) MembershipResponse {
	return MembershipResponse{
		ID:       m.ID.String(),
		LeagueID: m.LeagueID.String(),
		UserID:   m.UserID.String(),
		Role:     m.Role.String(),
		JoinedAt: m.JoinedAt,
	}
}

// ToPlayerProfileResponse はプロフィールをレスポンスに変換します。nilの場合はnilを返します
func ToPlayerProfileResponse(p *entity.PlayerProfile) *PlayerProfileResponse {
	if p == nil {
		return nil
	}
	positions := p.Positions
	if positions == nil {
		positions = []string{}
	}
	return &PlayerProfileResponse{
		DisplayName: p.DisplayName,
		Tier:        p.Tier,
		Positions:   positions,
		AvatarURL:   p.AvatarURL,
	}
}

// ToMemberListResponse はメンバー一覧をレスポンスに変換します
func ToMemberListResponse(members []*entity.MemberWithProfile) []MemberResponse {
	result := make([]MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberResponse{
			MembershipResponse: ToMembershipResponse(m.Membership),
			Profile:            ToPlayerProfileResponse(m.Profile),
		}
	}
	return result
}

// ToMemberStatsResponse は集計をレスポンスに変換します
func ToMemberStatsResponse(stats entity.MemberStats) MemberStatsResponse {
	return MemberStatsResponse{
		TotalMembers: stats.TotalMembers,
		AdminCount:   stats.AdminCount,
	}
}
