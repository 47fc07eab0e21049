package v1

import (
	"log"
	"net/http"

	"github.com/clientdesk/portal/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps application errors to HTTP statuses with a short
// human-readable message. Underlying store error text is logged, never
// shown verbatim to end users.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	case utils.IsPermissionError(err):
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
	case utils.IsRateLimitError(err):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"status":  "error",
			"message": "Too many download attempts, try again shortly",
		})
	case utils.IsDownloadError(err):
		log.Printf("download error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "File is currently unavailable",
		})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Something went wrong",
		})
	}
}

// currentUser extracts the authenticated identity placed in the context by
// the auth middleware
func currentUser(c *gin.Context) (userID string, isAdmin bool) {
	userID = c.GetString("userId")
	isAdmin = c.GetString("role") == "admin"
	return userID, isAdmin
}
