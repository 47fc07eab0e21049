package repositories

import (
	"time"

	"github.com/clientdesk/portal/database"
	"github.com/clientdesk/portal/models"
)

// DeliverableRepository handles metadata operations for deliverables.
// It is an interface so the lifecycle and integrity services can be
// exercised against an in-memory implementation.
type DeliverableRepository interface {
	Create(deliverable *models.Deliverable) error
	FindByID(id string) (models.Deliverable, error)
	FindByProjectID(projectID string) ([]models.Deliverable, error)
	FindFileBacked() ([]models.Deliverable, error)
	MarkSent(id string, at time.Time) (bool, error)
	ReclassifyToURL(id string) error
	Delete(id string) error
}

// GormDeliverableRepository is the Postgres-backed implementation
type GormDeliverableRepository struct{}

// NewDeliverableRepository creates a new deliverable repository instance
func NewDeliverableRepository() *GormDeliverableRepository {
	return &GormDeliverableRepository{}
}

// Create inserts a new deliverable into the database
func (r *GormDeliverableRepository) Create(deliverable *models.Deliverable) error {
	return database.DB.Create(deliverable).Error
}

// FindByID retrieves a deliverable by its ID
func (r *GormDeliverableRepository) FindByID(id string) (models.Deliverable, error) {
	var deliverable models.Deliverable
	result := database.DB.First(&deliverable, "id = ?", id)
	return deliverable, result.Error
}

// FindByProjectID retrieves all deliverables for a project
func (r *GormDeliverableRepository) FindByProjectID(projectID string) ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	result := database.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&deliverables)
	return deliverables, result.Error
}

// FindFileBacked retrieves all file-kind deliverables with a file path set.
// This is the working set of the integrity scanner.
func (r *GormDeliverableRepository) FindFileBacked() ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	result := database.DB.
		Where("kind = ? AND file_path IS NOT NULL", models.DeliverableKindFile).
		Find(&deliverables)
	return deliverables, result.Error
}

// MarkSent transitions a deliverable to sent exactly once. The sent guard is
// part of the WHERE clause so a concurrent or repeated send cannot overwrite
// the original sent_at. Returns true when this call performed the transition.
func (r *GormDeliverableRepository) MarkSent(id string, at time.Time) (bool, error) {
	result := database.DB.Model(&models.Deliverable{}).
		Where("id = ? AND sent = false", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": at})
	return result.RowsAffected > 0, result.Error
}

// ReclassifyToURL converts a broken file deliverable to url kind, clearing
// its file path. Guarded on kind so a repeated repair pass is a no-op.
func (r *GormDeliverableRepository) ReclassifyToURL(id string) error {
	return database.DB.Model(&models.Deliverable{}).
		Where("id = ? AND kind = ?", id, models.DeliverableKindFile).
		Updates(map[string]interface{}{"kind": models.DeliverableKindURL, "file_path": nil}).Error
}

// Delete removes a deliverable from the database (soft delete)
func (r *GormDeliverableRepository) Delete(id string) error {
	return database.DB.Delete(&models.Deliverable{}, "id = ?", id).Error
}
