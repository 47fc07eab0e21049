package v1

import (
	"io"
	"net/http"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// FileController handles HTTP requests for the file storage area
type FileController struct {
	fileService *services.FileService
}

// NewFileController creates a new file controller instance
func NewFileController(fileService *services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// RegisterRoutes registers file routes on an authenticated group
func (ctrl *FileController) RegisterRoutes(router *gin.RouterGroup) {
	files := router.Group("/files")
	{
		files.POST("", ctrl.UploadFile)
		files.GET("", ctrl.ListFiles)
		files.GET("/:id/download", ctrl.DownloadFile)
		files.DELETE("/:id", ctrl.DeleteFile)
	}
}

// UploadFile handles POST /api/v1/files (multipart)
func (ctrl *FileController) UploadFile(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "file part required",
		})
		return
	}

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

	req := dto.UploadFileRequest{
		FileName: fileHeader.Filename,
		Payload:  payload,
		Usage:    models.FileAssetUsage(c.PostForm("usage")),
	}
	if projectID := c.PostForm("projectId"); projectID != "" {
		req.ProjectID = &projectID
	}

	asset, err := ctrl.fileService.Upload(c.Request.Context(), userID, isAdmin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   asset,
	})
}

// ListFiles handles GET /api/v1/files. With a projectId query it lists that
// project's files; without one it lists everything (admin only).
func (ctrl *FileController) ListFiles(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	projectID := c.Query("projectId")
	usage := models.FileAssetUsage(c.Query("usage"))

	var assets []models.FileAsset
	var err error
	if projectID != "" {
		assets, err = ctrl.fileService.ListByProject(userID, isAdmin, projectID, usage)
	} else {
		assets, err = ctrl.fileService.ListAll(isAdmin)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   assets,
	})
}

// DownloadFile handles GET /api/v1/files/:id/download
func (ctrl *FileController) DownloadFile(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	signedURL, err := ctrl.fileService.Download(c.Request.Context(), userID, isAdmin, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"url": signedURL},
	})
}

// DeleteFile handles DELETE /api/v1/files/:id
func (ctrl *FileController) DeleteFile(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	if err := ctrl.fileService.Delete(c.Request.Context(), userID, isAdmin, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "File deleted successfully",
	})
}
