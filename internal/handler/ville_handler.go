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

type VilleHandler struct {
	villeService service.VilleService
}

func NewVilleHandler(villeService service.VilleService) *VilleHandler {
	return &VilleHandler{villeService: villeService}
}

func (h *VilleHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	villes := router.Group("/api/villes")
	{
		villes.GET("", auth.RequirePermission(authz.PermVillesRead), h.ListVilles)
		villes.GET("/:id", auth.RequirePermission(authz.PermVillesRead), h.GetVille)
		villes.POST("", auth.RequirePermission(authz.PermVillesCreate), h.CreateVille)
		villes.POST("/:id/copy", auth.RequirePermission(authz.PermVillesCreate), h.CopyVille)
		villes.PUT("/:id", auth.RequirePermission(authz.PermVillesUpdate), h.UpdateVille)
		villes.DELETE("/:id", auth.RequirePermission(authz.PermVillesDelete), h.DeleteVille)
	}
}

// ListVilles returns paginated cities with optional name search
// @Summary      List villes
// @Tags         villes
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by name"
// @Success      200     {object}  response.Response
// @Router       /api/villes [get]
func (h *VilleHandler) ListVilles(c *gin.Context) {
	params := pagination.Parse(c)

	villes, total, err := h.villeService.List(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, villes, params.Page, params.Limit, total))
}

// GetVille returns one city
// @Summary      Get ville
// @Tags         villes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ville ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/villes/{id} [get]
func (h *VilleHandler) GetVille(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ville, err := h.villeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ville))
}

// CreateVille creates a new city
// @Summary      Create ville
// @Tags         villes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.VilleRequest  true  "Ville payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/villes [post]
func (h *VilleHandler) CreateVille(c *gin.Context) {
	var req service.VilleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ville, err := h.villeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, ville))
}

// CopyVille duplicates a city under a copy-suffixed name
// @Summary      Copy ville
// @Tags         villes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ville ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/villes/{id}/copy [post]
func (h *VilleHandler) CopyVille(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ville, err := h.villeService.Copy(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, ville))
}

// UpdateVille updates an existing city
// @Summary      Update ville
// @Tags         villes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Ville ID"
// @Param        payload  body  service.VilleRequest  true  "Ville payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/villes/{id} [put]
func (h *VilleHandler) UpdateVille(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.VilleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ville, err := h.villeService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ville))
}

// DeleteVille deletes a city; its sectors cascade away and client references
// are detached
// @Summary      Delete ville
// @Tags         villes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ville ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/villes/{id} [delete]
func (h *VilleHandler) DeleteVille(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.villeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Ville deleted successfully"}))
}
