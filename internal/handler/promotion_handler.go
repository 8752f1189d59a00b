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

type PromotionHandler struct {
	promotionService service.PromotionService
}

func NewPromotionHandler(promotionService service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

func (h *PromotionHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	promotions := router.Group("/api/promotions")
	{
		promotions.GET("", auth.RequirePermission(authz.PermPromotionsRead), h.ListPromotions)
		promotions.GET("/:id", auth.RequirePermission(authz.PermPromotionsRead), h.GetPromotion)
		promotions.POST("", auth.RequirePermission(authz.PermPromotionsCreate), h.CreatePromotion)
		promotions.PUT("/:id", auth.RequirePermission(authz.PermPromotionsUpdate), h.UpdatePromotion)
		promotions.DELETE("/:id", auth.RequirePermission(authz.PermPromotionsDelete), h.DeletePromotion)
	}
}

// ListPromotions returns paginated buy-X-get-Y promotions
// @Summary      List promotions
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Items per page (default: 20)"
// @Success      200    {object}  response.Response
// @Router       /api/promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	params := pagination.Parse(c)

	promotions, total, err := h.promotionService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, promotions, params.Page, params.Limit, total))
}

// GetPromotion returns one promotion with both products
// @Summary      Get promotion
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Promotion ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	promotion, err := h.promotionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, promotion))
}

// CreatePromotion creates a new promotion
// @Summary      Create promotion
// @Tags         promotions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePromotionRequest  true  "Promotion payload"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req service.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	promotion, err := h.promotionService.Create(c.Request.Context(), middleware.UserIDFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, promotion))
}

// UpdatePromotion updates an existing promotion
// @Summary      Update promotion
// @Tags         promotions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                          true  "Promotion ID"
// @Param        payload  body  service.UpdatePromotionRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/promotions/{id} [put]
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	promotion, err := h.promotionService.Update(c.Request.Context(), middleware.UserIDFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, promotion))
}

// DeletePromotion deletes a promotion
// @Summary      Delete promotion
// @Tags         promotions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Promotion ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/promotions/{id} [delete]
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), middleware.UserIDFrom(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Promotion deleted successfully"}))
}
