package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apitypes "github.com/weisyn/taxledger/internal/api/http/types"
	"github.com/weisyn/taxledger/pkg/interfaces/infrastructure/clock"
)

// HealthHandler 存活检查
type HealthHandler struct {
	clock   clock.Clock
	started time.Time
}

// NewHealthHandler 创建存活检查处理器
func NewHealthHandler(clk clock.Clock) *HealthHandler {
	return &HealthHandler{clock: clk, started: clk.Now()}
}

// Health 返回运行状态
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.clock.Now()
	c.JSON(http.StatusOK, apitypes.HealthResponse{
		Status:    "ok",
		Uptime:    now.Sub(h.started).Round(time.Second).String(),
		Timestamp: now.UTC().Format(time.RFC3339),
	})
}
