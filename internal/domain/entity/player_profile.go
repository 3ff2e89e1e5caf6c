package entity

import (
	"time"

	"github.com/google/uuid"
)

// PlayerProfile はプレイヤープロフィール（外部のプロフィールストアの投影）
// このサービスは参照のみ行い、更新はしない
type PlayerProfile struct {
	UserID      uuid.UUID
	DisplayName string
	Tier        string
	Positions   []string
	AvatarURL   string
	UpdatedAt   time.Time
}

// HasPosition は指定ポジションを登録しているかを判定します
func (p *PlayerProfile) HasPosition(position string) bool {
	for _, pos := range p.Positions {
		if pos == position {
			return true
		}
	}
	return false
}
