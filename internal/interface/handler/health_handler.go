package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
)

// DependencyChecker は依存サービスの疎通を確認するインターフェースです
type DependencyChecker interface {
	Health(ctx context.Context) error
}

// Dependency はレディネスチェック対象の依存サービスです
// Requiredがfalseの依存は停止してもリクエストを処理できる（レート制限とアクティビティ配信はフェイルオープン）
type Dependency struct {
	Name     string
	Checker  DependencyChecker
	Required bool
}

const dependencyCheckTimeout = 2 * time.Second

// レディネスの状態
const (
	ReadinessReady    = "ready"
	ReadinessDegraded = "degraded"
	ReadinessNotReady = "not_ready"
)

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	dependencies []Dependency
	clock        clockwork.Clock
	startedAt    time.Time
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler(clock clockwork.Clock, dependencies ...Dependency) *HealthHandler {
	return &HealthHandler{
		dependencies: dependencies,
		clock:        clock,
		startedAt:    clock.Now(),
	}
}

// LivenessResponse はライブネスチェックレスポンスを定義します
type LivenessResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ReadinessResponse はレディネスチェックレスポンスを定義します
type ReadinessResponse struct {
	Status       string             `json:"status"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// DependencyStatus は依存サービスごとの確認結果です
type DependencyStatus struct {
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Up        bool   `json:"up"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, LivenessResponse{
		Status:        "ok",
		UptimeSeconds: int64(h.clock.Since(h.startedAt) / time.Second),
	})
}

// Ready はレディネスチェックを実行します
// 必須の依存が1つでも停止していれば503、任意の依存のみ停止していれば200でdegradedを返す
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dependencyCheckTimeout)
	defer cancel()

	results := make([]DependencyStatus, len(h.dependencies))
	var wg sync.WaitGroup
	for i, dep := range h.dependencies {
		wg.Add(1)
		go func(i int, dep Dependency) {
			defer wg.Done()
			results[i] = h.checkDependency(ctx, dep)
		}(i, dep)
	}
	wg.Wait()

	status := ReadinessReady
	for _, r := range results {
		if r.Up {
			continue
		}
		if r.Required {
			status = ReadinessNotReady
			break
		}
		status = ReadinessDegraded
	}

	code := http.StatusOK
	if status == ReadinessNotReady {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, ReadinessResponse{
		Status:       status,
		Dependencies: results,
	})
}

func (h *HealthHandler) checkDependency(ctx context.Context, dep Dependency) DependencyStatus {
	start := h.clock.Now()
	err := dep.Checker.Health(ctx)
	result := DependencyStatus{
		Name:      dep.Name,
		Required:  dep.Required,
		Up:        err == nil,
		LatencyMs: h.clock.Since(start).Milliseconds(),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
