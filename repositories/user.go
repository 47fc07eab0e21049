package repositories

import (
	"github.com/clientdesk/portal/database"
	"github.com/clientdesk/portal/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "id = ?", id)
	return user, result.Error
}

// FindClients retrieves all users with the client role
func (r *UserRepository) FindClients() ([]models.User, error) {
	var users []models.User
	result := database.DB.Where("role = ?", models.RoleClient).Order("created_at desc").Find(&users)
	return users, result.Error
}

// Update modifies an existing user
func (r *UserRepository) Update(user models.User) error {
	result := database.DB.Save(&user)
	return result.Error
}

// Delete removes a user from the database (soft delete)
func (r *UserRepository) Delete(id string) error {
	result := database.DB.Delete(&models.User{}, "id = ?", id)
	return result.Error
}
