package handlers

import (
	"net/http"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ResultHandler struct {
	Results   *service.ResultService
	Analytics *service.AnalyticsService
}

func NewResultHandler(results *service.ResultService, analytics *service.AnalyticsService) *ResultHandler {
	return &ResultHandler{Results: results, Analytics: analytics}
}

type submittedAnswer struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedOption *int   `json:"selected_option" binding:"required"`
}

type submitTestRequest struct {
	SelectedAnswers []submittedAnswer `json:"selected_answers" binding:"required"`
	TimeTaken       int               `json:"time_taken" binding:"gte=0"`
	AutoSubmission  struct {
		IsAutoSubmitted bool `json:"is_auto_submitted"`
		TabSwitches     int  `json:"tab_switches"`
	} `json:"auto_submission"`
}

func (h *ResultHandler) SubmitTest(c *gin.Context) {
	testID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid test id"))
		return
	}
	var req submitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]models.SelectedAnswer, 0, len(req.SelectedAnswers))
	for _, a := range req.SelectedAnswers {
		qid, err := primitive.ObjectIDFromHex(a.QuestionID)
		if err != nil {
			respondError(c, apperr.Validation("invalid question id: %s", a.QuestionID))
			return
		}
		answers = append(answers, models.SelectedAnswer{QuestionID: qid, SelectedOption: *a.SelectedOption})
	}

	result, err := h.Results.SubmitTest(c.Request.Context(), identityFrom(c), testID, service.Submission{
		Answers:   answers,
		TimeTaken: req.TimeTaken,
		AutoSubmission: models.AutoSubmission{
			IsAutoSubmitted: req.AutoSubmission.IsAutoSubmitted,
			TabSwitches:     req.AutoSubmission.TabSwitches,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"result_id": result.ID.Hex(),
		"score":     result.Score,
	})
}

func (h *ResultHandler) GetTestResult(c *gin.Context) {
	resultID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid result id"))
		return
	}
	detail, err := h.Analytics.GetTestResult(c.Request.Context(), identityFrom(c), resultID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ResultHandler) GetResultWithRecommendations(c *gin.Context) {
	resultID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid result id"))
		return
	}
	out, err := h.Analytics.GetResultWithRecommendations(c.Request.Context(), identityFrom(c), resultID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
