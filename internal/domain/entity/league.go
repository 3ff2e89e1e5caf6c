package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

// League はリーグエンティティ（集約ルート）
// 不変条件: ロールがownerのMembershipがちょうど1件存在する
type League struct {
	ID          uuid.UUID
	Name        valueobject.LeagueName
	Description string
	Region      string
	Type        string
	Accepting   bool
	Rules       []string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLeague は新しいリーグを作成します
// 作成直後は参加申請を受け付ける状態になります
func NewLeague(
	name valueobject.LeagueName,
	description string,
	region string,
	leagueType string,
	rules []string,
	ownerID uuid.UUID,
	now time.Time,
) *League {
	if rules == nil {
		rules = []string{}
	}
	return &League{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Region:      region,
		Type:        leagueType,
		Accepting:   true,
		Rules:       rules,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ReconstructLeague はDBからリーグを復元します
func ReconstructLeague(
	id uuid.UUID,
	name valueobject.LeagueName,
	description string,
	region string,
	leagueType string,
	accepting bool,
	rules []string,
	ownerID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) *League {
	if rules == nil {
		rules = []string{}
	}
	return &League{
		ID:          id,
		Name:        name,
		Description: description,
		Region:      region,
		Type:        leagueType,
		Accepting:   accepting,
		Rules:       rules,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsOwnedBy は指定ユーザーがオーナーかを判定します
func (l *League) IsOwnedBy(userID uuid.UUID) bool {
	return l.OwnerID == userID
}

// Rename はリーグ名を変更します
func (l *League) Rename(name valueobject.LeagueName, now time.Time) {
	l.Name = name
	l.UpdatedAt = now
}

// UpdateDescription は説明を更新します
func (l *League) UpdateDescription(description string, now time.Time) {
	l.Description = description
	l.UpdatedAt = now
}

// UpdateRegion は地域を更新します
func (l *League) UpdateRegion(region string, now time.Time) {
	l.Region = region
	l.UpdatedAt = now
}

// UpdateType はリーグ種別を更新します
func (l *League) UpdateType(leagueType string, now time.Time) {
	l.Type = leagueType
	l.UpdatedAt = now
}

// SetAccepting は参加申請の受付状態を切り替えます
func (l *League) SetAccepting(accepting bool, now time.Time) {
	l.Accepting = accepting
	l.UpdatedAt = now
}

// ReplaceRules はルール一覧を置き換えます
func (l *League) ReplaceRules(rules []string, now time.Time) {
	if rules == nil {
		rules = []string{}
	}
	l.Rules = rules
	l.UpdatedAt = now
}

// TransferOwnership はオーナー参照を変更します
func (l *League) TransferOwnership(newOwnerID uuid.UUID, now time.Time) {
	l.OwnerID = newOwnerID
	l.UpdatedAt = now
}
