package v1

import (
	"net/http"
	"strconv"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// ProjectController handles HTTP requests for projects
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller instance
func NewProjectController() *ProjectController {
	return &ProjectController{
		projectService: services.NewProjectService(),
	}
}

// RegisterRoutes registers project routes on an authenticated group
func (ctrl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", ctrl.ListProjects)
		projects.POST("", ctrl.CreateProject)
		projects.GET("/:id", ctrl.GetProject)
		projects.PUT("/:id", ctrl.UpdateProject)
		projects.DELETE("/:id", ctrl.DeleteProject)
	}
}

// ListProjects handles GET /api/v1/projects
func (ctrl *ProjectController) ListProjects(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	// Parse query parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	filter := dto.ProjectFilter{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		ClientID:  userID,
		IsAdmin:   isAdmin,
	}

	result, err := ctrl.projectService.ListProjects(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// GetProject handles GET /api/v1/projects/:id
func (ctrl *ProjectController) GetProject(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	project, err := ctrl.projectService.GetProjectDetail(c.Param("id"), userID, isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// CreateProject handles POST /api/v1/projects
func (ctrl *ProjectController) CreateProject(c *gin.Context) {
	_, isAdmin := currentUser(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := ctrl.projectService.CreateProject(req, isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   project,
	})
}

// UpdateProject handles PUT /api/v1/projects/:id
func (ctrl *ProjectController) UpdateProject(c *gin.Context) {
	_, isAdmin := currentUser(c)

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := ctrl.projectService.UpdateProject(c.Param("id"), req, isAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// DeleteProject handles DELETE /api/v1/projects/:id
func (ctrl *ProjectController) DeleteProject(c *gin.Context) {
	_, isAdmin := currentUser(c)

	if err := ctrl.projectService.DeleteProject(c.Param("id"), isAdmin); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}
