package controller

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GET: api/quizzes
func (c *QuizController) ListPublic(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListPublic()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	p := middleware.PrincipalFromContext(ctx)
	util.Success(ctx, c.QuizService.Views(quizzes, p))
}

// GET: api/quizzes/mine
func (c *QuizController) ListMine(ctx *gin.Context) {
	p := middleware.PrincipalFromContext(ctx)
	quizzes, err := c.QuizService.ListByAuthor(p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, c.QuizService.Views(quizzes, p))
}

// GET: api/quizzes/by-category/:name
func (c *QuizController) ListByCategory(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListPublicByCategory(ctx.Param("name"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	p := middleware.PrincipalFromContext(ctx)
	util.Success(ctx, c.QuizService.Views(quizzes, p))
}

// GET: api/quizzes/:id
func (c *QuizController) Get(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	view, err := c.QuizService.GetForViewer(id, p, ctx.Query("accessKey"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// GET: api/quizzes/access/:key
func (c *QuizController) ConnectByCode(ctx *gin.Context) {
	view, err := c.QuizService.ConnectByCode(ctx.Param("key"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// POST: api/quizzes
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	view, err := c.QuizService.Create(p, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// PUT: api/quizzes/:id
func (c *QuizController) Update(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	var req service.QuizUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	view, err := c.QuizService.Update(p, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// DELETE: api/quizzes/:id
func (c *QuizController) Delete(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	if err := c.QuizService.Delete(p, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
