package handler

import (
	"errors"
	"net/http"

	"commerce/internal/apperror"
	"commerce/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates service errors into the response envelope:
// field-keyed validation failures become 422, missing records 404,
// authorization denials 403, anything else 500.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperror.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(http.StatusUnprocessableEntity, ve.Fields))
		return
	}
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Record not found"))
		return
	}
	if errors.Is(err, apperror.ErrForbidden) {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied"))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
}

// pathID parses the :id path parameter. Writes the 400 response and returns
// false on malformed input.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses an optional uuid query filter, nil when absent or invalid.
func uuidQuery(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
