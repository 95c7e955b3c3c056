package controller

import (
	"quiz_backend/internal/middleware"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// GET: api/categories
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.CategoryService.List()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// GET: api/categories/:id
func (c *CategoryController) Get(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}
	category, err := c.CategoryService.GetByID(id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// POST: api/categories
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	category, err := c.CategoryService.Create(p, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// PUT: api/categories/:id
func (c *CategoryController) Update(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p := middleware.PrincipalFromContext(ctx)
	category, err := c.CategoryService.Update(p, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, category)
}
