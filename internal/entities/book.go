package entities

import (
	"errors"
	"fmt"
	"time"
)

// MinPublishedYear is the lower bound for a book's publication year.
const MinPublishedYear = 1000

// MaxPublishedYearAhead is how far into the future a publication year may be.
const MaxPublishedYearAhead = 10

type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Author        string    `gorm:"size:200;not null" json:"author"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Editorial     *string   `gorm:"size:200" json:"editorial,omitempty"`
	Genre         *string   `gorm:"size:100" json:"genre,omitempty"`
	Language      *string   `gorm:"size:50" json:"language,omitempty"`
	Pages         *int      `json:"pages,omitempty"`
	ISBN          *string   `gorm:"size:50" json:"isbn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateBookRequest is the payload for creating a book. It deliberately has
// no ID field: identifiers are always generated by the database.
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Editorial     *string `json:"editorial"`
	Genre         *string `json:"genre"`
	Language      *string `json:"language"`
	Pages         *int    `json:"pages"`
	ISBN          *string `json:"isbn"`
}

// Validate checks the request and returns the first violated rule as an
// error: required fields first, then ranges. Returns nil when valid.
func (r *CreateBookRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Author == "" {
		return errors.New("author is required")
	}
	if err := validatePublishedYear(r.PublishedYear); err != nil {
		return err
	}
	return validatePages(r.Pages)
}

// ToBook builds the entity to persist. Timestamps are set by the database layer.
func (r *CreateBookRequest) ToBook() *Book {
	return &Book{
		Title:         r.Title,
		Author:        r.Author,
		PublishedYear: r.PublishedYear,
		Editorial:     r.Editorial,
		Genre:         r.Genre,
		Language:      r.Language,
		Pages:         r.Pages,
		ISBN:          r.ISBN,
	}
}

// BookUpdate is a typed partial update: nil fields are left unchanged.
// Fields cannot be unset through an update, matching create semantics.
type BookUpdate struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Editorial     *string `json:"editorial"`
	Genre         *string `json:"genre"`
	Language      *string `json:"language"`
	Pages         *int    `json:"pages"`
	ISBN          *string `json:"isbn"`
}

// Validate checks the supplied fields only, in the same order as creation.
func (u *BookUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return errors.New("title cannot be empty")
	}
	if u.Author != nil && *u.Author == "" {
		return errors.New("author cannot be empty")
	}
	if err := validatePublishedYear(u.PublishedYear); err != nil {
		return err
	}
	return validatePages(u.Pages)
}

// Apply copies the supplied fields onto the book. UpdatedAt is refreshed by
// gorm when the row is saved, even for an empty update.
func (u *BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.PublishedYear != nil {
		b.PublishedYear = u.PublishedYear
	}
	if u.Editorial != nil {
		b.Editorial = u.Editorial
	}
	if u.Genre != nil {
		b.Genre = u.Genre
	}
	if u.Language != nil {
		b.Language = u.Language
	}
	if u.Pages != nil {
		b.Pages = u.Pages
	}
	if u.ISBN != nil {
		b.ISBN = u.ISBN
	}
}

func validatePublishedYear(year *int) error {
	if year == nil {
		return nil
	}
	max := time.Now().Year() + MaxPublishedYearAhead
	if *year < MinPublishedYear || *year > max {
		return fmt.Errorf("published_year must be between %d and %d", MinPublishedYear, max)
	}
	return nil
}

func validatePages(pages *int) error {
	if pages != nil && *pages < 1 {
		return errors.New("pages must be greater than 0")
	}
	return nil
}
