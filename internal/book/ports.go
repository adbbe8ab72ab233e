package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// List returns books matching q, newest id first.
	List(ctx context.Context, q Query) ([]Book, error)
	// GetByID returns ErrNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (Book, error)
	// GetByTitle returns ErrNotFound when no book has exactly this title.
	GetByTitle(ctx context.Context, title string) (Book, error)
	// Create returns ErrConflict when the title is already taken.
	Create(ctx context.Context, f Fields) (Book, error)
	// Update returns ErrNotFound when the id does not exist.
	Update(ctx context.Context, id int64, f Fields) (Book, error)
	// Delete returns ErrNotFound when the id does not exist.
	Delete(ctx context.Context, id int64) error
}
