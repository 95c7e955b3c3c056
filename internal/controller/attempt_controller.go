package controller

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

type StartAttemptRequest struct {
	AccessKey string `json:"accessKey"`
}

type FinishAttemptRequest struct {
	Answers []service.AnswerSubmission `json:"answers"`
}

// POST: api/quizzes/:id/start
func (c *AttemptController) Start(ctx *gin.Context) {
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req StartAttemptRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	if req.AccessKey == "" {
		req.AccessKey = ctx.Query("accessKey")
	}

	p := middleware.PrincipalFromContext(ctx)
	attempt, err := c.AttemptService.Start(quizID, p, req.AccessKey)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	monitoring.AttemptsStarted.Inc()
	util.Created(ctx, attempt)
}

// POST: api/attempts/:id/stop
func (c *AttemptController) Finish(ctx *gin.Context) {
	attemptID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	var req FinishAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	attempt, err := c.AttemptService.Finish(attemptID, p, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	monitoring.AttemptsCompleted.Inc()
	util.Success(ctx, attempt)
}

// GET: api/attempts/:id
func (c *AttemptController) Get(ctx *gin.Context) {
	attemptID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	attempt, err := c.AttemptService.GetForViewer(attemptID, p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// GET: api/attempts/:id/answers
func (c *AttemptController) ListAnswers(ctx *gin.Context) {
	attemptID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	answers, err := c.AttemptService.AnswersForViewer(attemptID, p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// GET: api/quizzes/:id/attempts
func (c *AttemptController) ListForQuiz(ctx *gin.Context) {
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	attempts, err := c.AttemptService.ListByQuiz(quizID, p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GET: api/quizzes/:id/leaderboard
func (c *AttemptController) Leaderboard(ctx *gin.Context) {
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	entries, err := c.AttemptService.Leaderboard(quizID, p, ctx.Query("accessKey"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
