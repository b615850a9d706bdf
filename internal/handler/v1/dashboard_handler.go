package v1

import (
	"github.com/carebridge/hms/internal/service"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	collector *metrics.Collector
}

func NewDashboardHandler(dashboard *service.DashboardService, collector *metrics.Collector) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, collector: collector}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	stats, fromCache, err := h.dashboard.Stats(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if fromCache {
		h.collector.DashboardCacheHits.Inc()
	} else {
		h.collector.DashboardCacheMisses.Inc()
	}

	respondOK(c, stats)
}
