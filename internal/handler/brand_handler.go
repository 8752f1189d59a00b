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

type BrandHandler struct {
	brandService service.BrandService
}

func NewBrandHandler(brandService service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

func (h *BrandHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	brands := router.Group("/api/brands")
	{
		brands.GET("", auth.RequirePermission(authz.PermBrandsRead), h.ListBrands)
		brands.GET("/:id", auth.RequirePermission(authz.PermBrandsRead), h.GetBrand)
		brands.POST("", auth.RequirePermission(authz.PermBrandsCreate), h.CreateBrand)
		brands.POST("/:id/copy", auth.RequirePermission(authz.PermBrandsCreate), h.CopyBrand)
		brands.PUT("/:id", auth.RequirePermission(authz.PermBrandsUpdate), h.UpdateBrand)
		brands.DELETE("/:id", auth.RequirePermission(authz.PermBrandsDelete), h.DeleteBrand)
	}
}

// ListBrands returns paginated brands with optional name search
// @Summary      List brands
// @Tags         brands
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by name"
// @Success      200     {object}  response.Response
// @Router       /api/brands [get]
func (h *BrandHandler) ListBrands(c *gin.Context) {
	params := pagination.Parse(c)

	brands, total, err := h.brandService.List(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, brands, params.Page, params.Limit, total))
}

// GetBrand returns one brand
// @Summary      Get brand
// @Tags         brands
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Brand ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/brands/{id} [get]
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	brand, err := h.brandService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, brand))
}

// CreateBrand creates a new brand
// @Summary      Create brand
// @Tags         brands
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.BrandRequest  true  "Brand payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/brands [post]
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, brand))
}

// CopyBrand duplicates a brand under a copy-suffixed name
// @Summary      Copy brand
// @Tags         brands
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Brand ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/brands/{id}/copy [post]
func (h *BrandHandler) CopyBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	brand, err := h.brandService.Copy(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, brand))
}

// UpdateBrand updates an existing brand
// @Summary      Update brand
// @Tags         brands
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Brand ID"
// @Param        payload  body  service.BrandRequest  true  "Brand payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/brands/{id} [put]
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, brand))
}

// DeleteBrand deletes a brand and, through the storage cascade, its
// categories and products
// @Summary      Delete brand
// @Tags         brands
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Brand ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/brands/{id} [delete]
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Brand deleted successfully"}))
}
