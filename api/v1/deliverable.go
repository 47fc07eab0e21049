package v1

import (
	"io"
	"net/http"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// DeliverableController handles HTTP requests for deliverables
type DeliverableController struct {
	deliverableService *services.DeliverableService
	projectService     *services.ProjectService
	deliverableRepo    repositories.DeliverableRepository
}

// NewDeliverableController creates a new deliverable controller instance
func NewDeliverableController(deliverableService *services.DeliverableService) *DeliverableController {
	return &DeliverableController{
		deliverableService: deliverableService,
		projectService:     services.NewProjectService(),
		deliverableRepo:    repositories.NewDeliverableRepository(),
	}
}

// RegisterRoutes registers deliverable routes on an authenticated group
func (ctrl *DeliverableController) RegisterRoutes(router *gin.RouterGroup) {
	deliverables := router.Group("/deliverables")
	{
		deliverables.POST("", ctrl.CreateDeliverable)
		deliverables.GET("/:id/download", ctrl.DownloadDeliverable)
		deliverables.POST("/:id/send", ctrl.SendDeliverable)
		deliverables.DELETE("/:id", ctrl.DeleteDeliverable)
		deliverables.POST("/bulk/send", ctrl.BulkSend)
		deliverables.POST("/bulk/delete", ctrl.BulkDelete)
		deliverables.POST("/bulk/download", ctrl.BulkDownload)
	}

	router.GET("/projects/:id/deliverables", ctrl.ListProjectDeliverables)
}

// CreateDeliverable handles POST /api/v1/deliverables. The request is
// multipart: form fields plus an optional file part for kind=file.
func (ctrl *DeliverableController) CreateDeliverable(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	req := dto.CreateDeliverableRequest{
		ProjectID:   c.PostForm("projectId"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Kind:        models.DeliverableKind(c.PostForm("kind")),
		URL:         c.PostForm("url"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Could not read uploaded file",
			})
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Could not read uploaded file",
			})
			return
		}

		req.FileName = fileHeader.Filename
		req.Payload = payload
	}

	deliverable, err := ctrl.deliverableService.Create(c.Request.Context(), userID, isAdmin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   deliverable,
	})
}

// ListProjectDeliverables handles GET /api/v1/projects/:id/deliverables
func (ctrl *DeliverableController) ListProjectDeliverables(c *gin.Context) {
	userID, isAdmin := currentUser(c)
	projectID := c.Param("id")

	// Project access check doubles as the deliverable access check
	if _, err := ctrl.projectService.GetProjectDetail(projectID, userID, isAdmin); err != nil {
		respondError(c, err)
		return
	}

	deliverables, err := ctrl.deliverableRepo.FindByProjectID(projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   deliverables,
	})
}

// SendDeliverable handles POST /api/v1/deliverables/:id/send
func (ctrl *DeliverableController) SendDeliverable(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	deliverable, err := ctrl.deliverableService.Send(c.Request.Context(), userID, isAdmin, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   deliverable,
	})
}

// DownloadDeliverable handles GET /api/v1/deliverables/:id/download
func (ctrl *DeliverableController) DownloadDeliverable(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	resolved, err := ctrl.deliverableService.Download(c.Request.Context(), userID, isAdmin, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   resolved,
	})
}

// DeleteDeliverable handles DELETE /api/v1/deliverables/:id
func (ctrl *DeliverableController) DeleteDeliverable(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	if err := ctrl.deliverableService.Delete(c.Request.Context(), userID, isAdmin, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Deliverable deleted successfully",
	})
}

// BulkSend handles POST /api/v1/deliverables/bulk/send
func (ctrl *DeliverableController) BulkSend(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	result := ctrl.deliverableService.SendMany(c.Request.Context(), userID, isAdmin, req.IDs)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// BulkDelete handles POST /api/v1/deliverables/bulk/delete
func (ctrl *DeliverableController) BulkDelete(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	result := ctrl.deliverableService.DeleteMany(c.Request.Context(), userID, isAdmin, req.IDs)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// BulkDownload handles POST /api/v1/deliverables/bulk/download
func (ctrl *DeliverableController) BulkDownload(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	result := ctrl.deliverableService.DownloadMany(c.Request.Context(), userID, isAdmin, req.IDs)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}
