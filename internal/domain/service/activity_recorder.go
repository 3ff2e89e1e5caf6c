package service

import (
	"context"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// ActivityRecorder はコミット済みの状態変更をアクティビティフィードへ通知するインターフェースです
// 記録の失敗は呼び出し元の操作結果に影響しない
type ActivityRecorder interface {
	// Record はイベントを非同期で記録します
	Record(ctx context.Context, event entity.ActivityEvent)
}

// NopActivityRecorder は何も記録しないActivityRecorderです
type NopActivityRecorder struct{}

// Record は何もしません
func (NopActivityRecorder) Record(context.Context, entity.ActivityEvent) {}
