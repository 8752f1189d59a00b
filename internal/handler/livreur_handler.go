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

type LivreurHandler struct {
	livreurService service.LivreurService
}

func NewLivreurHandler(livreurService service.LivreurService) *LivreurHandler {
	return &LivreurHandler{livreurService: livreurService}
}

func (h *LivreurHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	livreurs := router.Group("/api/livreurs")
	{
		livreurs.GET("", auth.RequirePermission(authz.PermLivreursRead), h.ListLivreurs)
		livreurs.GET("/:id", auth.RequirePermission(authz.PermLivreursRead), h.GetLivreur)
		livreurs.POST("", auth.RequirePermission(authz.PermLivreursCreate), h.CreateLivreur)
		livreurs.PUT("/:id", auth.RequirePermission(authz.PermLivreursUpdate), h.UpdateLivreur)
		livreurs.DELETE("/:id", auth.RequirePermission(authz.PermLivreursDelete), h.DeleteLivreur)
	}
}

// ListLivreurs returns paginated delivery drivers with optional name search
// @Summary      List livreurs
// @Tags         livreurs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by name"
// @Success      200     {object}  response.Response
// @Router       /api/livreurs [get]
func (h *LivreurHandler) ListLivreurs(c *gin.Context) {
	params := pagination.Parse(c)

	livreurs, total, err := h.livreurService.List(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, livreurs, params.Page, params.Limit, total))
}

// GetLivreur returns one delivery driver
// @Summary      Get livreur
// @Tags         livreurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Livreur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/livreurs/{id} [get]
func (h *LivreurHandler) GetLivreur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	livreur, err := h.livreurService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, livreur))
}

// CreateLivreur creates a new delivery driver
// @Summary      Create livreur
// @Tags         livreurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.LivreurRequest  true  "Livreur payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/livreurs [post]
func (h *LivreurHandler) CreateLivreur(c *gin.Context) {
	var req service.LivreurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	livreur, err := h.livreurService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, livreur))
}

// UpdateLivreur updates an existing delivery driver
// @Summary      Update livreur
// @Tags         livreurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Livreur ID"
// @Param        payload  body  service.LivreurRequest  true  "Livreur payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/livreurs/{id} [put]
func (h *LivreurHandler) UpdateLivreur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.LivreurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	livreur, err := h.livreurService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, livreur))
}

// DeleteLivreur deletes a delivery driver
// @Summary      Delete livreur
// @Tags         livreurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Livreur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/livreurs/{id} [delete]
func (h *LivreurHandler) DeleteLivreur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.livreurService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Livreur deleted successfully"}))
}
