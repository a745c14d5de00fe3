package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides book-related business logic.
type Service struct {
	repo  Repository
	newID func() string
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Create validates the payload, assigns an identifier when the caller
// omitted one and stores the book.
func (s *Service) Create(ctx context.Context, in NewBook) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}
	b := in.Book()
	if b.ID == "" {
		b.ID = s.newID()
	}
	return s.repo.Create(ctx, b)
}

// List returns the books matching q. The result is never nil.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	books, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a book by its identifier.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges u into the stored book. An update that changes nothing
// still returns the stored book.
func (s *Service) Update(ctx context.Context, id string, u Update) (Book, error) {
	if u.IsEmpty() {
		return Book{}, ErrEmptyUpdate
	}
	if err := u.Validate(); err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a book and reports what was removed.
func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{
		Message: fmt.Sprintf("Book with ID %s was successfully deleted", id),
		DeletedBook: Summary{
			ID:      b.ID,
			Title:   b.Title,
			Authors: b.Authors,
		},
	}, nil
}
