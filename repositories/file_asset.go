package repositories

import (
	"github.com/clientdesk/portal/database"
	"github.com/clientdesk/portal/models"
)

// FileAssetRepository handles database operations for stored files
type FileAssetRepository struct{}

// NewFileAssetRepository creates a new file asset repository instance
func NewFileAssetRepository() *FileAssetRepository {
	return &FileAssetRepository{}
}

// Create inserts a new file asset into the database
func (r *FileAssetRepository) Create(asset *models.FileAsset) error {
	return database.DB.Create(asset).Error
}

// FindByID retrieves a file asset by its ID
func (r *FileAssetRepository) FindByID(id string) (models.FileAsset, error) {
	var asset models.FileAsset
	result := database.DB.First(&asset, "id = ?", id)
	return asset, result.Error
}

// FindByProjectID retrieves file assets for a project, optionally filtered
// by usage
func (r *FileAssetRepository) FindByProjectID(projectID string, usage models.FileAssetUsage) ([]models.FileAsset, error) {
	var assets []models.FileAsset
	db := database.DB.Where("project_id = ?", projectID)
	if usage != "" {
		db = db.Where("usage = ?", usage)
	}
	result := db.Order("created_at desc").Find(&assets)
	return assets, result.Error
}

// FindAll retrieves all file assets, newest first
func (r *FileAssetRepository) FindAll() ([]models.FileAsset, error) {
	var assets []models.FileAsset
	result := database.DB.Order("created_at desc").Find(&assets)
	return assets, result.Error
}

// Delete removes a file asset from the database (soft delete)
func (r *FileAssetRepository) Delete(id string) error {
	return database.DB.Delete(&models.FileAsset{}, "id = ?", id).Error
}
