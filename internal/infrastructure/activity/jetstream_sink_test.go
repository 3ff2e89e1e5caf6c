package activity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// fakePublisher captures published messages.
type fakePublisher struct {
	msgs []*nats.Msg
	opts [][]jetstream.PublishOpt
	err  error
}

func (p *fakePublisher) PublishMsg(_ context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.msgs = append(p.msgs, msg)
	p.opts = append(p.opts, opts)
	return &jetstream.PubAck{Stream: "LEAGUE_ACTIVITY", Sequence: uint64(len(p.msgs))}, nil
}

func TestJetStreamSink_Publish(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	leagueID := uuid.New()
	actorID := uuid.New()
	targetID := uuid.New()

	t.Run("publishes json on action subject", func(t *testing.T) {
		pub := &fakePublisher{}
		sink := &JetStreamSink{js: pub, config: DefaultJetStreamConfig()}

		event := entity.NewActivityEvent(entity.ActivityMemberRoleChanged, leagueID, actorID, now).
			WithTarget(targetID).
			WithDetail("from", "member").
			WithDetail("to", "admin")

		err := sink.Publish(context.Background(), event)
		require.NoError(t, err)
		require.Len(t, pub.msgs, 1)

		msg := pub.msgs[0]
		assert.Equal(t, "league.activity.member.role_changed", msg.Subject)
		assert.Equal(t, "member.role_changed", msg.Header.Get("Event-Type"))
		assert.Equal(t, leagueID.String(), msg.Header.Get("League-ID"))
		assert.Len(t, pub.opts[0], 2)

		var decoded entity.ActivityEvent
		require.NoError(t, json.Unmarshal(msg.Data, &decoded))
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, entity.ActivityMemberRoleChanged, decoded.Action)
		require.NotNil(t, decoded.TargetUserID)
		assert.Equal(t, targetID, *decoded.TargetUserID)
		assert.Equal(t, "admin", decoded.Details["to"])
		assert.True(t, now.Equal(decoded.OccurredAt))
	})

	t.Run("wraps publish error", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("no responders")}
		sink := &JetStreamSink{js: pub, config: DefaultJetStreamConfig()}

		err := sink.Publish(context.Background(), entity.NewActivityEvent(entity.ActivityLeagueDeleted, leagueID, actorID, now))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish to JetStream")
	})
}

func TestJetStreamSink_Subject(t *testing.T) {
	cfg := DefaultJetStreamConfig()
	cfg.SubjectPrefix = "ryg.events"
	sink := &JetStreamSink{config: cfg}

	assert.Equal(t, "ryg.events.league.created", sink.Subject(entity.ActivityLeagueCreated))
	assert.Equal(t, "ryg.events.join_request.approved", sink.Subject(entity.ActivityJoinRequestApproved))
}

func TestJetStreamSink_HealthWithoutConnection(t *testing.T) {
	sink := &JetStreamSink{config: DefaultJetStreamConfig()}
	assert.Error(t, sink.Health(context.Background()))
}

func TestLogSink_Publish(t *testing.T) {
	event := entity.NewActivityEvent(entity.ActivityJoinRequestSubmitted, uuid.New(), uuid.New(), time.Now()).
		WithJoinRequest(uuid.New())

	assert.NoError(t, NewLogSink().Publish(context.Background(), event))
}
