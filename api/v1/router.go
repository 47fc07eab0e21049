package v1

import (
	"github.com/clientdesk/portal/middleware"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// Deps holds the services the router cannot construct itself because they
// own external connections
type Deps struct {
	DeliverableService *services.DeliverableService
	IntegrityService   *services.IntegrityService
	FileService        *services.FileService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Deps) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
	}

	// Authenticated endpoints
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware())

	projectController := NewProjectController()
	projectController.RegisterRoutes(authRouter)

	deliverableController := NewDeliverableController(deps.DeliverableService)
	deliverableController.RegisterRoutes(authRouter)

	fileController := NewFileController(deps.FileService)
	fileController.RegisterRoutes(authRouter)

	messageController := NewMessageController()
	messageController.RegisterRoutes(authRouter)

	// Admin endpoints
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())

	integrityController := NewIntegrityController(deps.IntegrityService)
	integrityController.RegisterRoutes(adminGroup)

	clientAdminController := NewClientAdminController()
	clientAdminController.RegisterRoutes(adminGroup)
}
