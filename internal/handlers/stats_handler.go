package handlers

import (
	"rentroll/internal/middleware"
	"rentroll/internal/services"
	"rentroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Dashboard 房东仪表盘汇总
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.GetDashboard(middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, "统计查询失败")
		return
	}
	response.Success(c, stats)
}

// AdminOverview 管理员全局概览
func (h *StatsHandler) AdminOverview(c *gin.Context) {
	overview, err := h.statsService.GetAdminOverview()
	if err != nil {
		response.ServerError(c, "统计查询失败")
		return
	}
	response.Success(c, overview)
}
