package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"qa-forum/internal/dto"
	"qa-forum/internal/middleware"
	"qa-forum/internal/service"
)

// QuestionHandler serves /api/question.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List handles GET /api/question/list?page=&size=&keyword=.
func (h *QuestionHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindErrorResponse(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"page": query.Page, "size": query.Size, "keyword": query.Keyword}).
		Debug("Handler.QuestionList")

	total, questions, err := h.questionService.List(c.Request.Context(), query.Page, query.Size, query.Keyword)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewQuestionList(total, questions))
}

// Detail handles GET /api/question/detail/:id.
func (h *QuestionHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid question id")
		return
	}
	question, err := h.questionService.Get(c.Request.Context(), uint(id))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewQuestion(*question))
}

// Create handles POST /api/question/create.
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	question, err := h.questionService.Create(c.Request.Context(), userID, req.Subject, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, dto.NewQuestion(*question))
}

// Update handles PUT /api/question/update.
func (h *QuestionHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.questionService.Update(c.Request.Context(), userID, req.QuestionID, req.Subject, req.Content); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/question/delete.
func (h *QuestionHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.QuestionRef
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.questionService.Delete(c.Request.Context(), userID, req.QuestionID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Vote handles POST /api/question/vote.
func (h *QuestionHandler) Vote(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.QuestionRef
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.questionService.Vote(c.Request.Context(), userID, req.QuestionID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireUser reads the authenticated user id set by middleware.Auth and
// answers 401 when it is missing.
func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		logrus.Warn("Handler: User ID not found in context, middleware missing or failed?")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return userID, true
}
