package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
	"github.com/koseha/ryg-web-sub000/internal/domain/service"
	"github.com/koseha/ryg-web-sub000/pkg/logger"
)

const (
	defaultBufferSize = 1000
	publishTimeout    = 5 * time.Second
)

// Sink はアクティビティイベントの配信先です
type Sink interface {
	Publish(ctx context.Context, event entity.ActivityEvent) error
}

// Recorder はアクティビティイベントを非同期でSinkへ配信します
type Recorder struct {
	sink   Sink
	events chan entity.ActivityEvent
	done   chan struct{}
}

// NewRecorder は新しいRecorderを作成し、配信ループを開始します
func NewRecorder(sink Sink, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	r := &Recorder{
		sink:   sink,
		events: make(chan entity.ActivityEvent, bufferSize),
		done:   make(chan struct{}),
	}
	go r.processLoop()
	return r
}

// Record はイベントをキューに追加します（非ブロッキング）
func (r *Recorder) Record(ctx context.Context, event entity.ActivityEvent) {
	if event.RequestID == "" {
		event.RequestID = logger.RequestIDFromContext(ctx)
	}

	select {
	case r.events <- event:
	default:
		// バッファが満杯の場合はログ出力して破棄
		slog.Warn("activity buffer full, dropping event",
			"action", string(event.Action),
			"league_id", event.LeagueID.String(),
		)
	}
}

// processLoop はバッファからイベントを読み取り配信します
func (r *Recorder) processLoop() {
	defer close(r.done)
	for event := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := r.sink.Publish(ctx, event); err != nil {
			slog.Error("failed to publish activity event",
				"error", err,
				"action", string(event.Action),
				"league_id", event.LeagueID.String(),
			)
		}
		cancel()
	}
}

// Shutdown は残りのイベントを配信してから停止します
func (r *Recorder) Shutdown() {
	close(r.events)
	<-r.done
}

var _ service.ActivityRecorder = (*Recorder)(nil)
