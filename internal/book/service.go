package book

import (
	"context"
	"errors"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all books, or those matching q.Search when it is not blank.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	if !q.Searching() {
		q.Search = ""
	}
	books, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, normalize(err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, normalize(err)
	}
	return b, nil
}

// Create inserts a new book. A taken title yields ErrConflict.
func (s *Service) Create(ctx context.Context, f Fields) (Book, error) {
	b, err := s.repo.Create(ctx, f)
	if err != nil {
		return Book{}, normalize(err)
	}
	return b, nil
}

// Update replaces all business fields of the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, f Fields) (Book, error) {
	b, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return Book{}, normalize(err)
	}
	return b, nil
}

// Delete removes the book permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return normalize(err)
	}
	return nil
}

// normalize makes sure every error leaving the service is an *Error.
func normalize(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return StoreFailure(err)
}
