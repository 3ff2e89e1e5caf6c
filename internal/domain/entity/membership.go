package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

// Membership はリーグメンバーシップエンティティ
// (LeagueID, UserID) の組は一意
type Membership struct {
	ID       uuid.UUID
	LeagueID uuid.UUID
	UserID   uuid.UUID
	Role     valueobject.LeagueRole
	JoinedAt time.Time
}

// NewMembership は新しいメンバーシップを作成します
func NewMembership(
	leagueID uuid.UUID,
	userID uuid.UUID,
	role valueobject.LeagueRole,
	joinedAt time.Time,
) *Membership {
	return &Membership{
		ID:       uuid.New(),
		LeagueID: leagueID,
		UserID:   userID,
		Role:     role,
		JoinedAt: joinedAt,
	}
}

// NewOwnerMembership はオーナー用のメンバーシップを作成します
func NewOwnerMembership(leagueID uuid.UUID, userID uuid.UUID, joinedAt time.Time) *Membership {
	return NewMembership(leagueID, userID, valueobject.LeagueRoleOwner, joinedAt)
}

// ReconstructMembership はDBからメンバーシップを復元します
func ReconstructMembership(
	id uuid.UUID,
	leagueID uuid.UUID,
	userID uuid.UUID,
	role valueobject.LeagueRole,
	joinedAt time.Time,
) *Membership {
	return &Membership{
		ID:       id,
		LeagueID: leagueID,
		UserID:   userID,
		Role:     role,
		JoinedAt: joinedAt,
	}
}

// IsOwner はオーナーかを判定します
func (m *Membership) IsOwner() bool {
	return m.Role.IsOwner()
}

// IsAdmin は管理者かを判定します
func (m *Membership) IsAdmin() bool {
	return m.Role.IsAdmin()
}

// ChangeRole はロールを変更します
// Ownerへの変更・Ownerからの変更は所有権譲渡でのみ行うため呼び出し側で防ぐこと
func (m *Membership) ChangeRole(newRole valueobject.LeagueRole) {
	m.Role = newRole
}

// CanLeave は脱退可能かを判定します（オーナーは所有権譲渡が必要）
func (m *Membership) CanLeave() bool {
	return !m.IsOwner()
}

// PromoteToOwner はオーナーに昇格します
func (m *Membership) PromoteToOwner() {
	m.Role = valueobject.LeagueRoleOwner
}

// DemoteToAdmin は管理者に降格します
func (m *Membership) DemoteToAdmin() {
	m.Role = valueobject.LeagueRoleAdmin
}

// IsMember は指定ユーザーのメンバーシップかを判定します
func (m *Membership) IsMember(userID uuid.UUID) bool {
	return m.UserID == userID
}

// BelongsToLeague は指定リーグのメンバーシップかを判定します
func (m *Membership) BelongsToLeague(leagueID uuid.UUID) bool {
	return m.LeagueID == leagueID
}

// MemberWithProfile はメンバーシップとプロフィールを結合した構造体
// Profileは未登録の場合nil
type MemberWithProfile struct {
	Membership *Membership
	Profile    *PlayerProfile
}

// MemberFilter はメンバー一覧の絞り込み条件
type MemberFilter struct {
	Role     *valueobject.LeagueRole
	Tier     string
	Position string
}

// MemberStats はリーグ全体のメンバー集計
type MemberStats struct {
	TotalMembers int
	AdminCount   int
}

// LeagueWithRole はリーグと呼び出しユーザーのロールを結合した構造体
type LeagueWithRole struct {
	League   *League
	Role     valueobject.LeagueRole
	JoinedAt time.Time
}
