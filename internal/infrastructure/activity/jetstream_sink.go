package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/koseha/ryg-web-sub000/internal/domain/entity"
)

// JetStreamConfig はJetStream配信の設定です
type JetStreamConfig struct {
	URL           string
	StreamName    string
	SubjectPrefix string
	MaxAge        time.Duration
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultJetStreamConfig はデフォルト設定を返します
func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:           nats.DefaultURL,
		StreamName:    "LEAGUE_ACTIVITY",
		SubjectPrefix: "league.activity",
		MaxAge:        7 * 24 * time.Hour,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// msgPublisher はjetstream.JetStreamのうち配信に使う部分です
type msgPublisher interface {
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// JetStreamSink はイベントをNATS JetStreamへ配信します
type JetStreamSink struct {
	nc     *nats.Conn
	js     msgPublisher
	config JetStreamConfig
}

// NewJetStreamSink はNATSへ接続し、ストリームを作成または更新します
func NewJetStreamSink(ctx context.Context, cfg JetStreamConfig) (*JetStreamSink, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("ryg-web-activity"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Description: "League membership activity feed",
		Subjects:    []string{cfg.SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.MaxAge,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return &JetStreamSink{nc: nc, js: js, config: cfg}, nil
}

// Subject はイベントの配信先サブジェクトを返します
func (s *JetStreamSink) Subject(action entity.ActivityAction) string {
	return s.config.SubjectPrefix + "." + string(action)
}

// Publish はイベントをJSONで配信します。イベントIDで重複排除されます
func (s *JetStreamSink) Publish(ctx context.Context, event entity.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}

	_, err = s.js.PublishMsg(ctx, &nats.Msg{
		Subject: s.Subject(event.Action),
		Data:    data,
		Header: nats.Header{
			"Event-Type": []string{string(event.Action)},
			"League-ID":  []string{event.LeagueID.String()},
		},
	},
		jetstream.WithMsgID(event.ID.String()),
		jetstream.WithExpectStream(s.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}
	return nil
}

// Health はNATS接続の状態を確認します
func (s *JetStreamSink) Health(_ context.Context) error {
	if s.nc == nil || !s.nc.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

// Close はNATS接続を閉じます
func (s *JetStreamSink) Close() {
	if s.nc != nil {
		s.nc.Drain()
	}
}
