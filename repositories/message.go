package repositories

import (
	"time"

	"github.com/clientdesk/portal/database"
	"github.com/clientdesk/portal/models"
)

// MessageRepository defines persistence operations for messages
type MessageRepository interface {
	Create(message models.Message) (models.Message, error)
	FindByID(id string) (models.Message, error)
	FindInbox(userID string) ([]models.Message, error)
	FindSent(userID string) ([]models.Message, error)
	MarkRead(id string, at time.Time) error
	Delete(id string) error
}

// GormMessageRepository is the Postgres-backed MessageRepository
type GormMessageRepository struct{}

// NewMessageRepository creates a new message repository instance
func NewMessageRepository() *GormMessageRepository {
	return &GormMessageRepository{}
}

// Create inserts a new message into the database
func (r *GormMessageRepository) Create(message models.Message) (models.Message, error) {
	result := database.DB.Create(&message)
	return message, result.Error
}

// FindByID retrieves a message by its ID
func (r *GormMessageRepository) FindByID(id string) (models.Message, error) {
	var message models.Message
	result := database.DB.First(&message, "id = ?", id)
	return message, result.Error
}

// FindInbox retrieves messages addressed to a user plus all broadcasts,
// newest first
func (r *GormMessageRepository) FindInbox(userID string) ([]models.Message, error) {
	var messages []models.Message
	result := database.DB.Preload("Sender").
		Where("recipient_id = ? OR recipient_id IS NULL", userID).
		Order("created_at desc").
		Find(&messages)
	return messages, result.Error
}

// FindSent retrieves messages authored by a user, newest first
func (r *GormMessageRepository) FindSent(userID string) ([]models.Message, error) {
	var messages []models.Message
	result := database.DB.Where("sender_id = ?", userID).Order("created_at desc").Find(&messages)
	return messages, result.Error
}

// MarkRead sets the read timestamp once; re-reading keeps the original time
func (r *GormMessageRepository) MarkRead(id string, at time.Time) error {
	return database.DB.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

// Delete removes a message from the database (soft delete)
func (r *GormMessageRepository) Delete(id string) error {
	return database.DB.Delete(&models.Message{}, "id = ?", id).Error
}
