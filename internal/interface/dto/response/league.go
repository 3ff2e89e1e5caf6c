package response

import (
	"time"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

// LeagueResponse はリーグレスポンスです
type LeagueResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Region      string    `json:"region"`
	Type        string    `json:"type"`
	Accepting   bool      `json:"accepting"`
	Rules       []string  `json:"rules"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeagueWithRoleResponse はリーグと呼び出しユーザーのロールを含むレスポンスです
type LeagueWithRoleResponse struct {
	League   LeagueResponse `json:"league"`
	MyRole   string         `json:"my_role,omitempty"`
	JoinedAt *time.Time     `json:"joined_at,omitempty"`
}

// TransferOwnershipResponse は所有権譲渡レスポンスです
type TransferOwnershipResponse struct {
	League        LeagueResponse     `json:"league"`
	NewOwner      MembershipResponse `json:"new_owner"`
	PreviousOwner MembershipResponse `json:"previous_owner"`
}

// ToLeagueResponse はエンティティからレスポンスに変換します
func ToLeagueResponse(league *entity.League) LeagueResponse {
	rules := league.Rules
	if rules == nil {
		rules = []string{}
	}
	return LeagueResponse{
		ID:          league.ID.String(),
		Name:        league.Name.String(),
		Description: league.Description,
		Region:      league.Region,
		Type:        league.Type,
		Accepting:   league.Accepting,
		Rules:       rules,
		OwnerID:     league.OwnerID.String(),
		CreatedAt:   league.CreatedAt,
		UpdatedAt:   league.UpdatedAt,
	}
}

// ToLeagueWithRoleResponse はリーグとロールからレスポンスに変換します
func ToLeagueWithRoleResponse(league *entity.League, role valueobject.LeagueRole) LeagueWithRoleResponse {
	return LeagueWithRoleResponse{
		League: ToLeagueResponse(league),
		MyRole: role.String(),
	}
}

// ToMyLeagueListResponse は所属リーグ一覧をレスポンスに変換します
func ToMyLeagueListResponse(leagues []*entity.LeagueWithRole) []LeagueWithRoleResponse {
	result := make([]LeagueWithRoleResponse, len(leagues))
	for i, lr := range leagues {
		joinedAt := lr.JoinedAt
		result[i] = LeagueWithRoleResponse{
			League:   ToLeagueResponse(lr.League),
			MyRole:   lr.Role.String(),
			JoinedAt: &joinedAt,
		}
	}
	return result
}
