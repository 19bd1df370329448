package handlers

import (
	"net/http"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	Service *service.QuestionService
}

func NewQuestionHandler(s *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{Service: s}
}

type bulkImportRequest struct {
	Questions []service.QuestionImport `json:"questions" binding:"required,min=1"`
}

// BulkImport receives already-parsed spreadsheet rows from the admin
// upload path.
func (h *QuestionHandler) BulkImport(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.Service.BulkImport(c.Request.Context(), identityFrom(c), req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": count})
}
