// Package handlers holds the thin HTTP layer: bind, delegate to a model,
// serialize. Errors go through c.Error and the error-handler middleware.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/tripweave/tripweave-backend/errors"
	"github.com/tripweave/tripweave-backend/middleware"
)

// requireUserID reads the authenticated user id or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("User not authenticated"))
		c.Abort()
		return "", false
	}
	return userID, true
}

// pathUUID validates a path parameter as a UUID or aborts with 400.
func pathUUID(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid "+name, "must be a valid UUID"))
		c.Abort()
		return "", false
	}
	return value, true
}

// bindJSON binds the request body or attaches a binding error.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		c.Abort()
		return false
	}
	return true
}
