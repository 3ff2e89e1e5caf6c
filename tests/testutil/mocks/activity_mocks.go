package mocks

import (
	"context"
	"sync"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// RecordingActivityRecorder collects recorded events in memory
type RecordingActivityRecorder struct {
	mu     sync.Mutex
	events []entity.ActivityEvent
}

func NewRecordingActivityRecorder() *RecordingActivityRecorder {
	return &RecordingActivityRecorder{}
}

func (r *RecordingActivityRecorder) Record(_ context.Context, event entity.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *RecordingActivityRecorder) Events() []entity.ActivityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.ActivityEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Actions returns the recorded actions in order
func (r *RecordingActivityRecorder) Actions() []entity.ActivityAction {
	events := r.Events()
	out := make([]entity.ActivityAction, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}
