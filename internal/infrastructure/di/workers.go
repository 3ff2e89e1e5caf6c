package di

import (
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/worker"
)

// NewWorkerManager はバックグラウンドジョブを登録したManagerを作成します
func NewWorkerManager(c *Container) *worker.Manager {
	m := worker.NewManager(c.Clock)

	if c.PgClient != nil {
		m.Register(worker.NewHealthCheckJob(c.PgClient.Health))
	}
	m.Register(worker.NewOwnerInvariantAuditJob(c.LeagueRepos.LeagueRepo.FindIDsWithoutSingleOwner))

	return m
}
