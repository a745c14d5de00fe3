package book

import (
	"errors"
	"slices"
)

var (
	// ErrNotFound is returned when no book has the requested identifier.
	ErrNotFound = errors.New("book not found")
	// ErrEmptyUpdate is returned when an update carries no fields.
	ErrEmptyUpdate = errors.New("at least one field must be provided")
)

// CollectionName is the collection (or table) that holds book documents.
const CollectionName = "books"

// Book represents a catalog entry.
type Book struct {
	ID               string   `json:"id" bson:"_id"`
	Title            string   `json:"title" bson:"title"`
	Authors          []string `json:"authors" bson:"authors"`
	AverageRating    float64  `json:"average_rating" bson:"average_rating"`
	ISBN             string   `json:"isbn" bson:"isbn"`
	ISBN13           string   `json:"isbn13" bson:"isbn13"`
	LanguageCode     string   `json:"language_code" bson:"language_code"`
	NumPages         int      `json:"num_pages" bson:"num_pages"`
	RatingsCount     int      `json:"ratings_count" bson:"ratings_count"`
	TextReviewsCount int      `json:"text_reviews_count" bson:"text_reviews_count"`
	PublicationDate  string   `json:"publication_date" bson:"publication_date"`
	Publisher        string   `json:"publisher" bson:"publisher"`
}

// Update is a partial set of book fields. A nil field is left unchanged;
// an explicit JSON null decodes to nil and is treated the same way.
type Update struct {
	Title            *string  `json:"title,omitempty"`
	Authors          []string `json:"authors,omitempty"`
	AverageRating    *float64 `json:"average_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ISBN             *string  `json:"isbn,omitempty"`
	ISBN13           *string  `json:"isbn13,omitempty"`
	LanguageCode     *string  `json:"language_code,omitempty"`
	NumPages         *int     `json:"num_pages,omitempty"`
	RatingsCount     *int     `json:"ratings_count,omitempty"`
	TextReviewsCount *int     `json:"text_reviews_count,omitempty"`
	PublicationDate  *string  `json:"publication_date,omitempty"`
	Publisher        *string  `json:"publisher,omitempty"`
}

// Fields returns the supplied fields keyed by their stored names.
func (u Update) Fields() map[string]any {
	f := make(map[string]any)
	if u.Title != nil {
		f["title"] = *u.Title
	}
	if u.Authors != nil {
		f["authors"] = u.Authors
	}
	if u.AverageRating != nil {
		f["average_rating"] = *u.AverageRating
	}
	if u.ISBN != nil {
		f["isbn"] = *u.ISBN
	}
	if u.ISBN13 != nil {
		f["isbn13"] = *u.ISBN13
	}
	if u.LanguageCode != nil {
		f["language_code"] = *u.LanguageCode
	}
	if u.NumPages != nil {
		f["num_pages"] = *u.NumPages
	}
	if u.RatingsCount != nil {
		f["ratings_count"] = *u.RatingsCount
	}
	if u.TextReviewsCount != nil {
		f["text_reviews_count"] = *u.TextReviewsCount
	}
	if u.PublicationDate != nil {
		f["publication_date"] = *u.PublicationDate
	}
	if u.Publisher != nil {
		f["publisher"] = *u.Publisher
	}
	return f
}

// IsEmpty reports whether the update carries no fields.
func (u Update) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Apply merges the supplied fields into b.
func (u Update) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Authors != nil {
		b.Authors = slices.Clone(u.Authors)
	}
	if u.AverageRating != nil {
		b.AverageRating = *u.AverageRating
	}
	if u.ISBN != nil {
		b.ISBN = *u.ISBN
	}
	if u.ISBN13 != nil {
		b.ISBN13 = *u.ISBN13
	}
	if u.LanguageCode != nil {
		b.LanguageCode = *u.LanguageCode
	}
	if u.NumPages != nil {
		b.NumPages = *u.NumPages
	}
	if u.RatingsCount != nil {
		b.RatingsCount = *u.RatingsCount
	}
	if u.TextReviewsCount != nil {
		b.TextReviewsCount = *u.TextReviewsCount
	}
	if u.PublicationDate != nil {
		b.PublicationDate = *u.PublicationDate
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
}

// Query defines filters and pagination for searching books.
// Nil fields impose no constraint.
type Query struct {
	MinRating *float64
	NumPages  *int
	Title     *string
	Limit     *int
	Skip      *int
}

// Summary identifies a deleted book.
type Summary struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
}

// DeleteResult is the confirmation returned after a delete.
type DeleteResult struct {
	Message     string  `json:"message"`
	DeletedBook Summary `json:"deleted_book"`
}
