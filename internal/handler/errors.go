package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_store/internal/utils"
)

// handleError maps a service error onto the response envelope. Errors that
// match no known kind are logged and reported as INTERNAL_ERROR with
// fallback as the message.
func handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrDuplicateReferenceID):
		utils.Error(c, 409, "DUPLICATE_REFERENCE_ID", err.Error())
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", err.Error())
	case errors.Is(err, utils.ErrInvalidArgument):
		utils.Error(c, 400, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, utils.ErrInvalidQuantity):
		utils.Error(c, 400, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, 422, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, utils.ErrLimitExceeded):
		utils.Error(c, 422, "LIMIT_EXCEEDED", err.Error())
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, utils.ErrInvalidToken):
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}
