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

type EntryHandler struct {
	entryService service.EntryService
}

func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	entrees := router.Group("/api/entrees")
	{
		entrees.GET("", auth.RequirePermission(authz.PermEntreesRead), h.ListEntrees)
		entrees.GET("/:id", auth.RequirePermission(authz.PermEntreesRead), h.GetEntree)
		entrees.POST("", auth.RequirePermission(authz.PermEntreesCreate), h.CreateEntree)
		entrees.PUT("/:id", auth.RequirePermission(authz.PermEntreesUpdate), h.UpdateEntree)
		entrees.DELETE("/:id", auth.RequirePermission(authz.PermEntreesDelete), h.DeleteEntree)
	}
}

// ListEntrees returns paginated stock entries with optional filters
// @Summary      List entrees
// @Tags         entrees
// @Security     BearerAuth
// @Produce      json
// @Param        page             query     int     false  "Page number (default: 1)"
// @Param        limit            query     int     false  "Items per page (default: 20)"
// @Param        product_id       query     string  false  "Filter by product"
// @Param        transporteur_id  query     string  false  "Filter by transporteur"
// @Success      200              {object}  response.Response
// @Router       /api/entrees [get]
func (h *EntryHandler) ListEntrees(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.entryService.List(c.Request.Context(),
		uuidQuery(c, "product_id"), uuidQuery(c, "transporteur_id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, entries, params.Page, params.Limit, total))
}

// GetEntree returns one stock entry with its product and carrier
// @Summary      Get entree
// @Tags         entrees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Entree ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/entrees/{id} [get]
func (h *EntryHandler) GetEntree(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := h.entryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// CreateEntree records a stock-in movement and pushes it to the live feed
// @Summary      Create entree
// @Tags         entrees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateEntryRequest  true  "Entree payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/entrees [post]
func (h *EntryHandler) CreateEntree(c *gin.Context) {
	var req service.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), middleware.UserIDFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// UpdateEntree updates an existing stock entry
// @Summary      Update entree
// @Tags         entrees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Entree ID"
// @Param        payload  body  service.UpdateEntryRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/entrees/{id} [put]
func (h *EntryHandler) UpdateEntree(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), middleware.UserIDFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// DeleteEntree deletes a stock entry
// @Summary      Delete entree
// @Tags         entrees
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Entree ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/entrees/{id} [delete]
func (h *EntryHandler) DeleteEntree(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), middleware.UserIDFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Entree deleted successfully"}))
}
