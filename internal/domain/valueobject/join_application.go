package valueobject

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	JoinMessageMaxLength = 500
	TierMaxLength        = 30
	PositionMaxLength    = 30
	MaxPositions         = 5
)

var (
	ErrJoinMessageEmpty   = errors.New("message cannot be empty")
	ErrJoinMessageTooLong = errors.New("message must be at most 500 characters")
	ErrTierEmpty          = errors.New("tier cannot be empty")
	ErrTierTooLong        = errors.New("tier must be at most 30 characters")
	ErrPositionsEmpty     = errors.New("at least one position is required")
	ErrTooManyPositions   = errors.New("at most 5 positions are allowed")
	ErrPositionEmpty      = errors.New("position cannot be empty")
	ErrPositionTooLong    = errors.New("position must be at most 30 characters")
	ErrDuplicatePosition  = errors.New("positions must be distinct")
)

// NewJoinMessage は参加申請メッセージを正規化します
func NewJoinMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", ErrJoinMessageEmpty
	}
	if utf8.RuneCountInString(trimmed) > JoinMessageMaxLength {
		return "", ErrJoinMessageTooLong
	}
	return trimmed, nil
}

// NewTier はランク帯を正規化します
func NewTier(tier string) (string, error) {
	trimmed := strings.TrimSpace(tier)
	if trimmed == "" {
		return "", ErrTierEmpty
	}
	if utf8.RuneCountInString(trimmed) > TierMaxLength {
		return "", ErrTierTooLong
	}
	return trimmed, nil
}

// NewPositions は希望ポジション一覧を正規化します
// 大文字小文字を区別せず重複を拒否し、小文字に揃えて返します
func NewPositions(positions []string) ([]string, error) {
	if len(positions) == 0 {
		return nil, ErrPositionsEmpty
	}
	if len(positions) > MaxPositions {
		return nil, ErrTooManyPositions
	}

	seen := make(map[string]struct{}, len(positions))
	result := make([]string, 0, len(positions))
	for _, p := range positions {
		normalized := strings.ToLower(strings.TrimSpace(p))
		if normalized == "" {
			return nil, ErrPositionEmpty
		}
		if utf8.RuneCountInString(normalized) > PositionMaxLength {
			return nil, ErrPositionTooLong
		}
		if _, dup := seen[normalized]; dup {
			return nil, ErrDuplicatePosition
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result, nil
}
