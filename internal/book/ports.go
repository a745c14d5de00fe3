package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=book

// Repository defines the contract for book document storage.
// Every method touches a single document and relies on the store for atomicity.
type Repository interface {
	Create(ctx context.Context, b Book) (Book, error)
	List(ctx context.Context, q Query) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	// Update merges u into the stored document and returns the result.
	// It returns ErrNotFound when no document has the identifier.
	Update(ctx context.Context, id string, u Update) (Book, error)
	// Delete removes the document and returns it as it was before removal.
	Delete(ctx context.Context, id string) (Book, error)
}
