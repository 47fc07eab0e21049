package v1

import (
	"net/http"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// MessageController handles HTTP requests for messaging
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new message controller instance
func NewMessageController() *MessageController {
	return &MessageController{
		messageService: services.NewMessageService(),
	}
}

// RegisterRoutes registers message routes on an authenticated group
func (ctrl *MessageController) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages")
	{
		messages.POST("", ctrl.SendMessage)
		messages.POST("/broadcast", ctrl.Broadcast)
		messages.GET("/inbox", ctrl.Inbox)
		messages.GET("/sent", ctrl.Sent)
		messages.POST("/:id/read", ctrl.MarkRead)
		messages.DELETE("/:id", ctrl.DeleteMessage)
	}
}

// SendMessage handles POST /api/v1/messages
func (ctrl *MessageController) SendMessage(c *gin.Context) {
	userID, _ := currentUser(c)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	message, err := ctrl.messageService.Send(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   message,
	})
}

// Broadcast handles POST /api/v1/messages/broadcast
func (ctrl *MessageController) Broadcast(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	message, err := ctrl.messageService.Broadcast(userID, isAdmin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   message,
	})
}

// Inbox handles GET /api/v1/messages/inbox
func (ctrl *MessageController) Inbox(c *gin.Context) {
	userID, _ := currentUser(c)

	messages, err := ctrl.messageService.Inbox(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   messages,
	})
}

// Sent handles GET /api/v1/messages/sent
func (ctrl *MessageController) Sent(c *gin.Context) {
	userID, _ := currentUser(c)

	messages, err := ctrl.messageService.Sent(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   messages,
	})
}

// MarkRead handles POST /api/v1/messages/:id/read
func (ctrl *MessageController) MarkRead(c *gin.Context) {
	userID, _ := currentUser(c)

	if err := ctrl.messageService.MarkRead(userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Message marked as read",
	})
}

// DeleteMessage handles DELETE /api/v1/messages/:id
func (ctrl *MessageController) DeleteMessage(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	if err := ctrl.messageService.Delete(userID, isAdmin, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Message deleted successfully",
	})
}
