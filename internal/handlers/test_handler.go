package handlers

import (
	"net/http"

	"assessment-service/internal/apperr"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

type customTestRequest struct {
	Time              int      `json:"time" binding:"required,gt=0"`
	NumberOfQuestions int      `json:"number_of_questions" binding:"required,gt=0"`
	Topics            []string `json:"topics" binding:"required,min=1"`
}

type companyTestRequest struct {
	Company string `json:"company" binding:"required"`
}

func (h *TestHandler) CreateCustomTest(c *gin.Context) {
	var req customTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Service.CreateCustomTest(c.Request.Context(), identityFrom(c), service.CustomTestParams{
		Duration:          req.Time,
		NumberOfQuestions: req.NumberOfQuestions,
		Topics:            req.Topics,
		EducationLevel:    c.Param("level"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TestHandler) CreateCompanyTest(c *gin.Context) {
	var req companyTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.Service.CreateCompanyTest(c.Request.Context(), identityFrom(c), c.Param("level"), req.Company)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TestHandler) CreateCETTest(c *gin.Context) {
	created, err := h.Service.CreateCETTest(c.Request.Context(), identityFrom(c), c.Param("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TestHandler) CreateGateTest(c *gin.Context) {
	created, err := h.Service.CreateGateTest(c.Request.Context(), identityFrom(c), c.Param("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTest serves the taker-facing view; answer keys never leave the
// service on this path.
func (h *TestHandler) GetTest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid test id"))
		return
	}
	view, err := h.Service.GetTest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
