package controller

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	AttemptService *service.AttemptService
}

func NewUserController(userService *service.UserService, attemptService *service.AttemptService) *UserController {
	return &UserController{
		UserService:    userService,
		AttemptService: attemptService,
	}
}

// GET: api/user/profile
func (c *UserController) GetProfile(ctx *gin.Context) {
	p := middleware.PrincipalFromContext(ctx)
	user, err := c.UserService.GetProfile(p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// PUT: api/user/profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	user, err := c.UserService.UpdateProfile(p, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// POST: api/user/avatar/upload
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}
	defer file.Close()

	p := middleware.PrincipalFromContext(ctx)
	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), p, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// GET: api/user/attempts
func (c *UserController) ListAttempts(ctx *gin.Context) {
	p := middleware.PrincipalFromContext(ctx)
	attempts, err := c.AttemptService.ListByUser(p)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
