// Package books provides database operations for the book catalogue.
package books

import (
	"errors"

	"gorm.io/gorm"

	"librarium/internal/entities"
)

// Repository handles all book database operations. Lookups that match no row
// return (nil, nil) so callers can tell "not found" apart from real failures.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every book in the store.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Find(&books).Error
	return books, err
}

// GetByID retrieves a book by ID, or (nil, nil) when no such row exists.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create persists a new book and returns its post-write state. The request
// type carries no ID, so identifiers are always database-generated.
func (r *Repository) Create(req *entities.CreateBookRequest) (*entities.Book, error) {
	var created entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		book := req.ToBook()
		if err := tx.Create(book).Error; err != nil {
			return err
		}
		return tx.First(&created, book.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update and returns the post-write row, or
// (nil, nil) when the id does not exist. The update timestamp refreshes even
// when the update supplies no fields.
func (r *Repository) Update(id uint, update *entities.BookUpdate) (*entities.Book, error) {
	var updated *entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		update.Apply(&book)
		if err := tx.Save(&book).Error; err != nil {
			return err
		}
		var fresh entities.Book
		if err := tx.First(&fresh, book.ID).Error; err != nil {
			return err
		}
		updated = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a book outright and returns the deleted row, or (nil, nil)
// when the id does not exist.
func (r *Repository) Delete(id uint) (*entities.Book, error) {
	var deleted *entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&book).Error; err != nil {
			return err
		}
		deleted = &book
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
