package handlers

import (
	"net/http"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	Service *service.TopicService
}

func NewTopicHandler(s *service.TopicService) *TopicHandler {
	return &TopicHandler{Service: s}
}

func (h *TopicHandler) GetAllTopics(c *gin.Context) {
	domains, err := h.Service.GetAllTopics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

func (h *TopicHandler) GetCETTopics(c *gin.Context) {
	topics, err := h.Service.GetCETTopics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics_by_subject": topics})
}

func (h *TopicHandler) GetTopicsBySubject(c *gin.Context) {
	view, err := h.Service.GetTopicsBySubject(c.Request.Context(), c.Param("subjectName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
