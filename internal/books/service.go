// Package books holds the book catalogue business logic.
package books

import (
	"librarium/internal/database/books"
	"librarium/internal/entities"
)

// Service orchestrates repository calls for the book catalogue. Validation
// happens at the HTTP boundary; the service passes validated requests on to
// the repository.
type Service struct {
	repo *books.Repository
}

// NewService creates a new book service.
func NewService(repo *books.Repository) *Service {
	return &Service{repo: repo}
}

// GetAllBooks returns every book in the catalogue.
func (s *Service) GetAllBooks() ([]entities.Book, error) {
	return s.repo.GetAll()
}

// GetBookByID returns a book, or (nil, nil) when none exists.
func (s *Service) GetBookByID(id uint) (*entities.Book, error) {
	return s.repo.GetByID(id)
}

// CreateBook persists a new book and returns its stored state.
func (s *Service) CreateBook(req *entities.CreateBookRequest) (*entities.Book, error) {
	return s.repo.Create(req)
}

// UpdateBook applies a partial update, or returns (nil, nil) when the id
// does not exist.
func (s *Service) UpdateBook(id uint, update *entities.BookUpdate) (*entities.Book, error) {
	return s.repo.Update(id, update)
}

// DeleteBook removes a book, or returns (nil, nil) when the id does not exist.
func (s *Service) DeleteBook(id uint) (*entities.Book, error) {
	return s.repo.Delete(id)
}
