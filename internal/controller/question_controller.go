package controller

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GET: api/quizzes/:id/questions
func (c *QuestionController) ListForQuiz(ctx *gin.Context) {
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	views, err := c.QuestionService.ListForViewer(quizID, p, ctx.Query("accessKey"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// POST: api/questions
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	view, err := c.QuestionService.Create(p, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// PUT: api/questions/:id
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	view, err := c.QuestionService.Update(p, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// DELETE: api/questions/:id
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	if err := c.QuestionService.Delete(p, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
