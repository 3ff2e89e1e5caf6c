package valueobject

import (
	"strings"
	"testing"
)

func TestNewJoinMessage_WhitespaceOnly_ReturnsErrJoinMessageEmpty(t *testing.T) {
	if _, err := NewJoinMessage("   "); err != ErrJoinMessageEmpty {
		t.Errorf("expected ErrJoinMessageEmpty, got: %v", err)
	}
}

func TestNewJoinMessage_TooLong_ReturnsError(t *testing.T) {
	if _, err := NewJoinMessage(strings.Repeat("あ", JoinMessageMaxLength+1)); err != ErrJoinMessageTooLong {
		t.Errorf("expected ErrJoinMessageTooLong, got: %v", err)
	}
}

func TestNewJoinMessage_Trims(t *testing.T) {
	msg, err := NewJoinMessage("  hi  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "hi" {
		t.Errorf("got %q, want %q", msg, "hi")
	}
}

func TestNewTier_Empty_ReturnsErrTierEmpty(t *testing.T) {
	if _, err := NewTier(""); err != ErrTierEmpty {
		t.Errorf("expected ErrTierEmpty, got: %v", err)
	}
}

func TestNewPositions_NormalizesAndKeepsOrder(t *testing.T) {
	got, err := NewPositions([]string{" Mid", "JUNGLE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "mid" || got[1] != "jungle" {
		t.Errorf("got %v", got)
	}
}

func TestNewPositions_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  error
	}{
		{"nil", nil, ErrPositionsEmpty},
		{"blank entry", []string{"top", " "}, ErrPositionEmpty},
		{"duplicate ignoring case", []string{"top", "TOP"}, ErrDuplicatePosition},
		{"too many", []string{"a", "b", "c", "d", "e", "f"}, ErrTooManyPositions},
		{"too long", []string{strings.Repeat("x", PositionMaxLength+1)}, ErrPositionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPositions(tt.input); err != tt.want {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}
