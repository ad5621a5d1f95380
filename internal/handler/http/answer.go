package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qa-forum/internal/dto"
	"qa-forum/internal/service"
)

// AnswerHandler serves /api/answer.
type AnswerHandler struct {
	answerService *service.AnswerService
}

// NewAnswerHandler creates an AnswerHandler.
func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// List handles GET /api/answer/list?page=&size=.
func (h *AnswerHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindErrorResponse(c, err)
		return
	}
	total, answers, err := h.answerService.List(c.Request.Context(), query.Page, query.Size)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewAnswerList(total, answers))
}

// Detail handles GET /api/answer/detail/:id.
func (h *AnswerHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid answer id")
		return
	}
	answer, err := h.answerService.Get(c.Request.Context(), uint(id))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewAnswer(*answer))
}

// Create handles POST /api/answer/create.
func (h *AnswerHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AnswerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	answer, err := h.answerService.Create(c.Request.Context(), userID, req.QuestionID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, dto.NewAnswer(*answer))
}

// Update handles PUT /api/answer/update.
func (h *AnswerHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AnswerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.answerService.Update(c.Request.Context(), userID, req.AnswerID, req.Content); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/answer/delete.
func (h *AnswerHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AnswerRef
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.answerService.Delete(c.Request.Context(), userID, req.AnswerID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Vote handles POST /api/answer/vote.
func (h *AnswerHandler) Vote(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.AnswerRef
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}
	if err := h.answerService.Vote(c.Request.Context(), userID, req.AnswerID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
