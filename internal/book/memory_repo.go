package book

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MemoryRepo keeps books in process memory, in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]Book
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[string]Book)}
}

func clone(b Book) Book {
	b.Authors = slices.Clone(b.Authors)
	return b
}

func (r *MemoryRepo) Create(_ context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[b.ID]; exists {
		return Book{}, fmt.Errorf("insert book %s: duplicate identifier", b.ID)
	}
	r.books[b.ID] = clone(b)
	r.order = append(r.order, b.ID)
	return clone(b), nil
}

func (r *MemoryRepo) List(_ context.Context, q Query) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var title string
	if q.Title != nil {
		title = strings.ToLower(*q.Title)
	}

	skip := 0
	if q.Skip != nil {
		skip = *q.Skip
	}

	out := []Book{}
	for _, id := range r.order {
		b := r.books[id]
		if q.MinRating != nil && b.AverageRating < *q.MinRating {
			continue
		}
		if q.NumPages != nil && b.NumPages != *q.NumPages {
			continue
		}
		if q.Title != nil && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, clone(b))
		if q.Limit != nil && *q.Limit > 0 && len(out) == *q.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return clone(b), nil
}

func (r *MemoryRepo) Update(_ context.Context, id string, u Update) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	u.Apply(&b)
	r.books[id] = b
	return clone(b), nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return b, nil
}
