package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	LeagueDescriptionMaxLength = 1000
	RegionMaxLength            = 50
	LeagueTypeMaxLength        = 50
	MaxLeagueRules             = 20
	LeagueRuleMaxLength        = 200
)

var (
	ErrDescriptionTooLong = errors.New("description must be at most 1000 characters")
	ErrRegionEmpty        = errors.New("region cannot be empty")
	ErrRegionTooLong      = errors.New("region must be at most 50 characters")
	ErrLeagueTypeEmpty    = errors.New("league type cannot be empty")
	ErrLeagueTypeTooLong  = errors.New("league type must be at most 50 characters")
	ErrTooManyRules       = errors.New("a league may have at most 20 rules")
	ErrRuleEmpty          = errors.New("rule cannot be empty")
	ErrRuleTooLong        = errors.New("rule must be at most 200 characters")
)

// NewDescription はリーグ説明文を正規化します（空文字は許可）
func NewDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) > LeagueDescriptionMaxLength {
		return "", ErrDescriptionTooLong
	}
	return trimmed, nil
}

// NewRegion は地域（サーバー）名を正規化します
func NewRegion(region string) (string, error) {
	trimmed := strings.TrimSpace(region)
	if trimmed == "" {
		return "", ErrRegionEmpty
	}
	if utf8.RuneCountInString(trimmed) > RegionMaxLength {
		return "", ErrRegionTooLong
	}
	return trimmed, nil
}

// NewLeagueType はリーグ種別を正規化します
func NewLeagueType(leagueType string) (string, error) {
	trimmed := strings.TrimSpace(leagueType)
	if trimmed == "" {
		return "", ErrLeagueTypeEmpty
	}
	if utf8.RuneCountInString(trimmed) > LeagueTypeMaxLength {
		return "", ErrLeagueTypeTooLong
	}
	return trimmed, nil
}

// NewLeagueRules はルール一覧を検証します
// 順序は保持し、各ルールは前後の空白を除去します
func NewLeagueRules(rules []string) ([]string, error) {
	if len(rules) > MaxLeagueRules {
		return nil, ErrTooManyRules
	}
	result := make([]string, 0, len(rules))
	for _, rule := range rules {
		trimmed := strings.TrimSpace(rule)
		if trimmed == "" {
			return nil, ErrRuleEmpty
		}
		if utf8.RuneCountInString(trimmed) > LeagueRuleMaxLength {
			return nil, ErrRuleTooLong
		}
		result = append(result, trimmed)
	}
	return result, nil
}
