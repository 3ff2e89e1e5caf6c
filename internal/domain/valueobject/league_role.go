package valueobject

import "errors"

var (
	ErrInvalidLeagueRole = errors.New("invalid league role")
)

// LeagueRole はリーグ内のメンバーシップロールを表す値オブジェクト
// ロール階層: Owner > Admin > Member
type LeagueRole string

const (
	LeagueRoleMember LeagueRole = "member"
	LeagueRoleAdmin  LeagueRole = "admin"
	LeagueRoleOwner  LeagueRole = "owner"
)

// NewLeagueRole は文字列からLeagueRoleを生成します
func NewLeagueRole(role string) (LeagueRole, error) {
	r := LeagueRole(role)
	if !r.IsValid() {
		return "", ErrInvalidLeagueRole
	}
	return r, nil
}

// IsValid はロールが有効かを判定します
func (r LeagueRole) IsValid() bool {
	switch r {
	case LeagueRoleMember, LeagueRoleAdmin, LeagueRoleOwner:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (r LeagueRole) String() string {
	return string(r)
}

// IsOwner はオーナーかを判定します
func (r LeagueRole) IsOwner() bool {
	return r == LeagueRoleOwner
}

// IsAdmin は管理者かを判定します
func (r LeagueRole) IsAdmin() bool {
	return r == LeagueRoleAdmin
}

// IsStaff は運営権限（Owner, Admin）を持つかを判定します
func (r LeagueRole) IsStaff() bool {
	return r == LeagueRoleOwner || r == LeagueRoleAdmin
}

// Level はロールのレベルを返します（比較用）
func (r LeagueRole) Level() int {
	switch r {
	case LeagueRoleOwner:
		return 3
	case LeagueRoleAdmin:
		return 2
	case LeagueRoleMember:
		return 1
	default:
		return 0
	}
}

// Outranks は指定されたロールより上位かを判定します
func (r LeagueRole) Outranks(other LeagueRole) bool {
	return r.Level() > other.Level()
}

// AssignableRoles はロール変更で指定可能なロールを返します
// Ownerは所有権譲渡でのみ移動する
func AssignableRoles() []LeagueRole {
	return []LeagueRole{LeagueRoleAdmin, LeagueRoleMember}
}
