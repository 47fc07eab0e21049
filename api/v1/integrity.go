package v1

import (
	"net/http"

	"github.com/clientdesk/portal/services"
	"github.com/gin-gonic/gin"
)

// IntegrityController exposes the deliverable integrity scanner to admins
type IntegrityController struct {
	integrityService *services.IntegrityService
}

// NewIntegrityController creates a new integrity controller instance
func NewIntegrityController(integrityService *services.IntegrityService) *IntegrityController {
	return &IntegrityController{integrityService: integrityService}
}

// RegisterRoutes registers integrity routes on an admin group
func (ctrl *IntegrityController) RegisterRoutes(router *gin.RouterGroup) {
	integrity := router.Group("/integrity")
	{
		integrity.GET("/scan", ctrl.Scan)
		integrity.POST("/repair", ctrl.Repair)
		integrity.GET("/orphans", ctrl.Orphans)
	}
}

// Scan handles GET /api/v1/admin/integrity/scan
func (ctrl *IntegrityController) Scan(c *gin.Context) {
	report, err := ctrl.integrityService.Scan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}

// Repair handles POST /api/v1/admin/integrity/repair
func (ctrl *IntegrityController) Repair(c *gin.Context) {
	result, err := ctrl.integrityService.Repair(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}

// Orphans handles GET /api/v1/admin/integrity/orphans
func (ctrl *IntegrityController) Orphans(c *gin.Context) {
	report, err := ctrl.integrityService.SweepOrphans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}
