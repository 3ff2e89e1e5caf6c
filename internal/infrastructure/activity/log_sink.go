package activity

import (
	"context"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

// LogSink はイベントを構造化ログとして出力します。NATSが未設定の環境で使用します
type LogSink struct{}

// NewLogSink は新しいLogSinkを作成します
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Publish はイベントをinfoレベルで出力します
func (s *LogSink) Publish(ctx context.Context, event entity.ActivityEvent) error {
	args := []any{
		"event_id", event.ID.String(),
		"action", string(event.Action),
		"league_id", event.LeagueID.String(),
		"actor_id", event.ActorID.String(),
	}
	if event.TargetUserID != nil {
		args = append(args, "target_user_id", event.TargetUserID.String())
	}
	if event.JoinRequestID != nil {
		args = append(args, "join_request_id", event.JoinRequestID.String())
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}
	logger.Info(ctx, "league activity", args...)
	return nil
}
