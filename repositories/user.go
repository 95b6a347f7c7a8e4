package repositories

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/models"
)

// UserRepository handles database operations for user profiles
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

// FindAll retrieves all user profiles
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	result := database.DB.Order("created_at ASC").Find(&users)
	return users, result.Error
}
