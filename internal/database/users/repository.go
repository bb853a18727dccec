// Package users provides database operations for user accounts.
package users

import (
	"errors"

	"gorm.io/gorm"

	"librarium/internal/entities"
)

// Repository handles all user database operations. Lookups that match no row
// return (nil, nil) so callers can tell "not found" apart from real failures.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user. The password must already be hashed.
func (r *Repository) Create(username, email, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetAll returns every registered user.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Find(&users).Error
	return users, err
}

// GetByID retrieves a user by ID, or (nil, nil) when no such row exists.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	return first(r.db.First(&user, id), &user)
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	return first(r.db.Where("username = ?", username).First(&user), &user)
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	return first(r.db.Where("email = ?", email).First(&user), &user)
}

// GetByLogin retrieves a user by username or email, for login.
func (r *Repository) GetByLogin(login string) (*entities.User, error) {
	var user entities.User
	return first(r.db.Where("username = ? OR email = ?", login, login).First(&user), &user)
}

// Delete removes a user outright and returns the deleted row, or (nil, nil)
// when the id does not exist.
func (r *Repository) Delete(id uint) (*entities.User, error) {
	var deleted *entities.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		deleted = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func first(result *gorm.DB, user *entities.User) (*entities.User, error) {
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}
