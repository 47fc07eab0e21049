package v1

import (
	"net/http"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// ClientAdminController lets admins manage client accounts
type ClientAdminController struct {
	userRepo *repositories.UserRepository
}

// NewClientAdminController creates a new client admin controller instance
func NewClientAdminController() *ClientAdminController {
	return &ClientAdminController{
		userRepo: repositories.NewUserRepository(),
	}
}

// RegisterRoutes registers client management routes on an admin group
func (ctrl *ClientAdminController) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/clients")
	{
		clients.GET("", ctrl.ListClients)
		clients.POST("", ctrl.CreateClient)
		clients.PUT("/:id", ctrl.UpdateClient)
		clients.DELETE("/:id", ctrl.DeleteClient)
	}
}

// ListClients handles GET /api/v1/admin/clients
func (ctrl *ClientAdminController) ListClients(c *gin.Context) {
	clients, err := ctrl.userRepo.FindClients()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   clients,
	})
}

// CreateClient handles POST /api/v1/admin/clients
func (ctrl *ClientAdminController) CreateClient(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	client, err := services.Register(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Client creation failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   client,
	})
}

// UpdateClient handles PUT /api/v1/admin/clients/:id
func (ctrl *ClientAdminController) UpdateClient(c *gin.Context) {
	client, err := ctrl.userRepo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Client not found",
		})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Company *string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Name != nil {
		client.Name = req.Name
	}
	if req.Company != nil {
		client.Company = req.Company
	}

	if err := ctrl.userRepo.Update(client); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   client,
	})
}

// DeleteClient handles DELETE /api/v1/admin/clients/:id
func (ctrl *ClientAdminController) DeleteClient(c *gin.Context) {
	if err := ctrl.userRepo.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Client deleted successfully",
	})
}
