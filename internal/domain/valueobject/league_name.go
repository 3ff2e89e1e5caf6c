package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	LeagueNameMaxLength = 100
)

var (
	ErrLeagueNameEmpty   = errors.New("league name cannot be empty")
	ErrLeagueNameTooLong = errors.New("league name must be at most 100 characters")
)

// LeagueName はリーグ名を表す値オブジェクト
type LeagueName struct {
	value string
}

// NewLeagueName は文字列からLeagueNameを生成します
func NewLeagueName(name string) (LeagueName, error) {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return LeagueName{}, ErrLeagueNameEmpty
	}

	if utf8.RuneCountInString(trimmed) > LeagueNameMaxLength {
		return LeagueName{}, ErrLeagueNameTooLong
	}

	return LeagueName{value: trimmed}, nil
}

// ReconstructLeagueName はDBから読み込んだ値をそのまま復元します
func ReconstructLeagueName(name string) LeagueName {
	return LeagueName{value: name}
}

// Value は値を返します
func (n LeagueName) Value() string {
	return n.value
}

// String は文字列を返します
func (n LeagueName) String() string {
	return n.value
}

// Equals は等価性を判定します
func (n LeagueName) Equals(other LeagueName) bool {
	return n.value == other.value
}
