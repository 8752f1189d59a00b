package handler

import (
	"net/http"

	"commerce/internal/authz"
	"commerce/internal/middleware"
	"commerce/internal/service"
	"commerce/pkg/pagination"
	"commerce/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SecteurHandler struct {
	secteurService service.SecteurService
}

func NewSecteurHandler(secteurService service.SecteurService) *SecteurHandler {
	return &SecteurHandler{secteurService: secteurService}
}

func (h *SecteurHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	secteurs := router.Group("/api/secteurs")
	{
		secteurs.GET("", auth.RequirePermission(authz.PermSecteursRead), h.ListSecteurs)
		secteurs.GET("/:id", auth.RequirePermission(authz.PermSecteursRead), h.GetSecteur)
		secteurs.POST("", auth.RequirePermission(authz.PermSecteursCreate), h.CreateSecteur)
		secteurs.PUT("/:id", auth.RequirePermission(authz.PermSecteursUpdate), h.UpdateSecteur)
		secteurs.DELETE("/:id", auth.RequirePermission(authz.PermSecteursDelete), h.DeleteSecteur)
	}
	// dedicated endpoint for dependent select boxes on the client form
	router.GET("/api/secteurs-by-ville/:id", auth.RequirePermission(authz.PermSecteursRead), h.ListSecteursByVille)
}

// ListSecteurs returns paginated sectors with optional ville filter
// @Summary      List secteurs
// @Tags         secteurs
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        limit     query     int     false  "Items per page (default: 20)"
// @Param        ville_id  query     string  false  "Filter by ville"
// @Success      200       {object}  response.Response
// @Router       /api/secteurs [get]
func (h *SecteurHandler) ListSecteurs(c *gin.Context) {
	params := pagination.Parse(c)

	secteurs, total, err := h.secteurService.List(c.Request.Context(), uuidQuery(c, "ville_id"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, secteurs, params.Page, params.Limit, total))
}

// ListSecteursByVille returns all sectors of one city, unpaginated
// @Summary      List secteurs of a ville
// @Tags         secteurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Ville ID"
// @Success      200  {object}  response.Response
// @Router       /api/secteurs-by-ville/{id} [get]
func (h *SecteurHandler) ListSecteursByVille(c *gin.Context) {
	villeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id"))
		return
	}

	secteurs, err := h.secteurService.ListByVille(c.Request.Context(), villeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, secteurs))
}

// GetSecteur returns one sector with its city
// @Summary      Get secteur
// @Tags         secteurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Secteur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/secteurs/{id} [get]
func (h *SecteurHandler) GetSecteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	secteur, err := h.secteurService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, secteur))
}

// CreateSecteur creates a new sector inside a city
// @Summary      Create secteur
// @Tags         secteurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SecteurRequest  true  "Secteur payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/secteurs [post]
func (h *SecteurHandler) CreateSecteur(c *gin.Context) {
	var req service.SecteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	secteur, err := h.secteurService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, secteur))
}

// UpdateSecteur updates an existing sector
// @Summary      Update secteur
// @Tags         secteurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Secteur ID"
// @Param        payload  body  service.SecteurRequest  true  "Secteur payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/secteurs/{id} [put]
func (h *SecteurHandler) UpdateSecteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.SecteurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	secteur, err := h.secteurService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, secteur))
}

// DeleteSecteur deletes a sector; client references are detached
// @Summary      Delete secteur
// @Tags         secteurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Secteur ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/secteurs/{id} [delete]
func (h *SecteurHandler) DeleteSecteur(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.secteurService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Secteur deleted successfully"}))
}
