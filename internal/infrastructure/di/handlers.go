package di

import (
	"github.com/koseha/ryg-web-sub000/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health      *handler.HealthHandler
	League      *handler.LeagueHandler
	JoinRequest *handler.JoinRequestHandler
	Member      *handler.MemberHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Postgresのみ必須、Redis(レート制限)とNATS(アクティビティ配信)は停止時に縮退する
	var deps []handler.Dependency
	if c.PgClient != nil {
		deps = append(deps, handler.Dependency{Name: "postgres", Checker: c.PgClient, Required: true})
	}
	if c.RedisClient != nil {
		deps = append(deps, handler.Dependency{Name: "redis", Checker: c.RedisClient})
	}
	if c.jetStream != nil {
		deps = append(deps, handler.Dependency{Name: "nats", Checker: c.jetStream})
	}

	h := newLeagueHandlers(c)
	h.Health = handler.NewHealthHandler(c.Clock, deps...)
	return h
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	return newLeagueHandlers(c)
}

func newLeagueHandlers(c *Container) *Handlers {
	uc := c.League
	return &Handlers{
		League: handler.NewLeagueHandler(
			uc.CreateLeague,
			uc.UpdateLeague,
			uc.DeleteLeague,
			uc.TransferOwnership,
			uc.GetLeague,
			uc.ListMyLeagues,
		),
		JoinRequest: handler.NewJoinRequestHandler(
			uc.SubmitJoinRequest,
			uc.ResolveJoinRequest,
			uc.WithdrawJoinRequest,
			uc.ListJoinRequests,
			uc.GetMyJoinRequest,
		),
		Member: handler.NewMemberHandler(
			uc.ChangeMemberRole,
			uc.RemoveMember,
			uc.LeaveLeague,
			uc.ListMembers,
		),
	}
}
