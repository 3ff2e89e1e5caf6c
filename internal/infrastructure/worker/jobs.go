package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	healthCheckInterval    = 5 * time.Minute
	ownerInvariantInterval = 10 * time.Minute
)

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: healthCheckInterval,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}

// NewOwnerInvariantAuditJob はオーナー不変条件の監査ジョブを作成します
// オーナーが1人でないリーグを検出した場合はエラーログを出力します。データは変更しません
func NewOwnerInvariantAuditJob(findFn func(ctx context.Context) ([]uuid.UUID, error)) Job {
	return Job{
		Name:     "owner_invariant_audit",
		Interval: ownerInvariantInterval,
		Fn: func(ctx context.Context) error {
			ids, err := findFn(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				slog.Debug("owner invariant audit passed")
				return nil
			}

			leagueIDs := make([]string, len(ids))
			for i, id := range ids {
				leagueIDs[i] = id.String()
			}
			slog.Error("leagues violate the single owner invariant",
				"count", len(ids),
				"league_ids", leagueIDs,
			)
			return nil
		},
	}
}
