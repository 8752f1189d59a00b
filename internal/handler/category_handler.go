package handler

import (
	"net/http"

	"commerce/internal/authz"
	"commerce/internal/middleware"
	"commerce/internal/service"
	"commerce/pkg/pagination"
	"commerce/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	categories := router.Group("/api/categories")
	{
		categories.GET("", auth.RequirePermission(authz.PermCategoriesRead), h.ListCategories)
		categories.GET("/:id", auth.RequirePermission(authz.PermCategoriesRead), h.GetCategory)
		categories.POST("", auth.RequirePermission(authz.PermCategoriesCreate), h.CreateCategory)
		categories.POST("/:id/copy", auth.RequirePermission(authz.PermCategoriesCreate), h.CopyCategory)
		categories.PUT("/:id", auth.RequirePermission(authz.PermCategoriesUpdate), h.UpdateCategory)
		categories.DELETE("/:id", auth.RequirePermission(authz.PermCategoriesDelete), h.DeleteCategory)
	}
}

// ListCategories returns paginated categories with optional brand/search filter
// @Summary      List categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        limit     query     int     false  "Items per page (default: 20)"
// @Param        brand_id  query     string  false  "Filter by brand"
// @Param        search    query     string  false  "Search by name"
// @Success      200       {object}  response.Response
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	params := pagination.Parse(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), uuidQuery(c, "brand_id"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, categories, params.Page, params.Limit, total))
}

// GetCategory returns one category with its brand
// @Summary      Get category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// CreateCategory creates a new category under a brand
// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CategoryRequest  true  "Category payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// CopyCategory duplicates a category within the same brand
// @Summary      Copy category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id}/copy [post]
func (h *CategoryHandler) CopyCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.Copy(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateCategory updates an existing category
// @Summary      Update category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "Category ID"
// @Param        payload  body  service.CategoryRequest  true  "Category payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteCategory deletes a category and its products (cascade)
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Category deleted successfully"}))
}
