package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/artmarkt/marketplace-api/internal/api/handler/v1/response"
	"github.com/artmarkt/marketplace-api/internal/api/middleware"
)

var (
	errMissingAuthContext = errors.New("authenticated user not found in request context")
)

// getCallerID returns the principal the JWT middleware authenticated.
func getCallerID(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized(errMissingAuthContext)
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrUnauthorized(errMissingAuthContext)
	}

	return userID, nil
}
