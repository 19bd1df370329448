package handlers

import (
	"net/http"
	"strconv"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	Analytics *service.AnalyticsService
}

func NewHistoryHandler(analytics *service.AnalyticsService) *HistoryHandler {
	return &HistoryHandler{Analytics: analytics}
}

func (h *HistoryHandler) GetUserHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	out, err := h.Analytics.GetUserHistory(c.Request.Context(), identityFrom(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *HistoryHandler) GetUserAnalytics(c *gin.Context) {
	out, err := h.Analytics.GetUserAnalytics(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
