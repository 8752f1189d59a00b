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

type CommercialHandler struct {
	commercialService service.CommercialService
}

func NewCommercialHandler(commercialService service.CommercialService) *CommercialHandler {
	return &CommercialHandler{commercialService: commercialService}
}

func (h *CommercialHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	commerciaux := router.Group("/api/commerciaux")
	{
		commerciaux.GET("", auth.RequirePermission(authz.PermCommerciauxRead), h.ListCommerciaux)
		commerciaux.GET("/:id", auth.RequirePermission(authz.PermCommerciauxRead), h.GetCommercial)
		commerciaux.POST("", auth.RequirePermission(authz.PermCommerciauxCreate), h.CreateCommercial)
		commerciaux.POST("/:id/copy", auth.RequirePermission(authz.PermCommerciauxCreate), h.CopyCommercial)
		commerciaux.PUT("/:id", auth.RequirePermission(authz.PermCommerciauxUpdate), h.UpdateCommercial)
		commerciaux.DELETE("/:id", auth.RequirePermission(authz.PermCommerciauxDelete), h.DeleteCommercial)
	}
}

// ListCommerciaux returns paginated sales agents with optional search
// @Summary      List commerciaux
// @Tags         commerciaux
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by code or name"
// @Success      200     {object}  response.Response
// @Router       /api/commerciaux [get]
func (h *CommercialHandler) ListCommerciaux(c *gin.Context) {
	params := pagination.Parse(c)

	commerciaux, total, err := h.commercialService.List(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, commerciaux, params.Page, params.Limit, total))
}

// GetCommercial returns one sales agent
// @Summary      Get commercial
// @Tags         commerciaux
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Commercial ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/commerciaux/{id} [get]
func (h *CommercialHandler) GetCommercial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	commercial, err := h.commercialService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, commercial))
}

// CreateCommercial creates a new sales agent
// @Summary      Create commercial
// @Tags         commerciaux
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CommercialRequest  true  "Commercial payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/commerciaux [post]
func (h *CommercialHandler) CreateCommercial(c *gin.Context) {
	var req service.CommercialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	commercial, err := h.commercialService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, commercial))
}

// CopyCommercial duplicates a sales agent with an incremented code
// @Summary      Copy commercial
// @Tags         commerciaux
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Commercial ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/commerciaux/{id}/copy [post]
func (h *CommercialHandler) CopyCommercial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	commercial, err := h.commercialService.Copy(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, commercial))
}

// UpdateCommercial updates an existing sales agent
// @Summary      Update commercial
// @Tags         commerciaux
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Commercial ID"
// @Param        payload  body  service.CommercialRequest  true  "Commercial payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/commerciaux/{id} [put]
func (h *CommercialHandler) UpdateCommercial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.CommercialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	commercial, err := h.commercialService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, commercial))
}

// DeleteCommercial deletes a sales agent; client references are detached
// @Summary      Delete commercial
// @Tags         commerciaux
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Commercial ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/commerciaux/{id} [delete]
func (h *CommercialHandler) DeleteCommercial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commercialService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Commercial deleted successfully"}))
}
