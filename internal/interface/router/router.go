package router

import (
	"github.com/labstack/echo/v4"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/cache"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/di"
	"github.com/koseha/ryg-web-sub000/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
// ヘルスチェック以外はすべてJWT認証が必要です
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1",
		r.middlewares.JWTAuth.Authenticate(),
		r.middlewares.RateLimit.ByUser(cache.RateLimitAPIDefault),
	)

	api.GET("", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "RYG League API v1",
		})
	})

	r.setupLeagueRoutes(api)
	r.setupJoinRequestRoutes(api)
	r.setupMemberRoutes(api)
}

// setupLeagueRoutes はリーグ関連ルートを設定します
func (r *Router) setupLeagueRoutes(api *echo.Group) {
	mutation := r.middlewares.RateLimit.ByUser(cache.RateLimitLeagueMutation)

	leagues := api.Group("/leagues")
	leagues.POST("", r.handlers.League.CreateLeague, mutation)
	leagues.GET("/mine", r.handlers.League.ListMyLeagues)
	leagues.GET("/:id", r.handlers.League.GetLeague)
	leagues.PATCH("/:id", r.handlers.League.UpdateLeague, mutation)
	leagues.DELETE("/:id", r.handlers.League.DeleteLeague, mutation)
	leagues.POST("/:id/transfer-ownership", r.handlers.League.TransferOwnership, mutation)
}

// setupJoinRequestRoutes は参加申請関連ルートを設定します
func (r *Router) setupJoinRequestRoutes(api *echo.Group) {
	mutation := r.middlewares.RateLimit.ByUser(cache.RateLimitLeagueMutation)

	leagues := api.Group("/leagues/:id/join-requests")
	leagues.POST("", r.handlers.JoinRequest.Submit,
		r.middlewares.RateLimit.ByUser(cache.RateLimitJoinSubmit))
	leagues.GET("", r.handlers.JoinRequest.ListPending)
	leagues.GET("/mine", r.handlers.JoinRequest.GetMine)
	leagues.DELETE("/mine", r.handlers.JoinRequest.WithdrawMine, mutation)

	requests := api.Group("/join-requests")
	requests.DELETE("/:id", r.handlers.JoinRequest.WithdrawByID, mutation)
	requests.POST("/:id/resolve", r.handlers.JoinRequest.Resolve, mutation)
}

// setupMemberRoutes はメンバー関連ルートを設定します
func (r *Router) setupMemberRoutes(api *echo.Group) {
	mutation := r.middlewares.RateLimit.ByUser(cache.RateLimitLeagueMutation)

	leagues := api.Group("/leagues/:id")
	leagues.GET("/members", r.handlers.Member.ListMembers)
	leagues.PATCH("/members/:userId/role", r.handlers.Member.ChangeRole, mutation)
	leagues.DELETE("/members/:userId", r.handlers.Member.RemoveMember, mutation)
	leagues.POST("/leave", r.handlers.Member.Leave, mutation)
}
