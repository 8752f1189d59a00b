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

type TransporteurHandler struct {
	transporteurService service.TransporteurService
}

func NewTransporteurHandler(transporteurService service.TransporteurService) *TransporteurHandler {
	return &TransporteurHandler{transporteurService: transporteurService}
}

func (h *TransporteurHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	transporteurs := router.Group("/api/transporteurs")
	{
		transporteurs.GET("", auth.RequirePermission(authz.PermTransporteursRead), h.ListTransporteurs)
		transporteurs.GET("/:id", auth.RequirePermission(authz.PermTransporteursRead), h.GetTransporteur)
		transporteurs.POST("", auth.RequirePermission(authz.PermTransporteursCreate), h.CreateTransporteur)
		transporteurs.PUT("/:id", auth.RequirePermission(authz.PermTransporteursUpdate), h.UpdateTransporteur)
		transporteurs.DELETE("/:id", auth.RequirePermission(authz.PermTransporteursDelete), h.DeleteTransporteur)
	}
}

// ListTransporteurs returns paginated carriers with optional search
// @Summary      List transporteurs
// @Tags         transporteurs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        search  query     string  false  "Search by driver name or plate"
// @Success      200     {object}  response.Response
// @Router       /api/transporteurs [get]
func (h *TransporteurHandler) ListTransporteurs(c *gin.Context) {
	params := pagination.Parse(c)

	transporteurs, total, err := h.transporteurService.List(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, transporteurs, params.Page, params.Limit, total))
}

// GetTransporteur returns one carrier
// @Summary      Get transporteur
// @Tags         transporteurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Transporteur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/transporteurs/{id} [get]
func (h *TransporteurHandler) GetTransporteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	transporteur, err := h.transporteurService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transporteur))
}

// CreateTransporteur creates a new carrier
// @Summary      Create transporteur
// @Tags         transporteurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.TransporteurRequest  true  "Transporteur payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/transporteurs [post]
func (h *TransporteurHandler) CreateTransporteur(c *gin.Context) {
	var req service.TransporteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	transporteur, err := h.transporteurService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, transporteur))
}

// UpdateTransporteur updates an existing carrier
// @Summary      Update transporteur
// @Tags         transporteurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Transporteur ID"
// @Param        payload  body  service.TransporteurRequest  true  "Transporteur payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/transporteurs/{id} [put]
func (h *TransporteurHandler) UpdateTransporteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.TransporteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	transporteur, err := h.transporteurService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transporteur))
}

// DeleteTransporteur deletes a carrier and its stock entries (cascade)
// @Summary      Delete transporteur
// @Tags         transporteurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Transporteur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/transporteurs/{id} [delete]
func (h *TransporteurHandler) DeleteTransporteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.transporteurService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Transporteur deleted successfully"}))
}
