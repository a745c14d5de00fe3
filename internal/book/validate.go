package book

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so error details match the payload the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewBook is the create payload. Pointer fields let a missing field be told
// apart from a zero value.
type NewBook struct {
	ID               *string  `json:"id"`
	Title            *string  `json:"title" validate:"required"`
	Authors          []string `json:"authors" validate:"required"`
	AverageRating    *float64 `json:"average_rating" validate:"required,gte=0,lte=5"`
	ISBN             *string  `json:"isbn" validate:"required"`
	ISBN13           *string  `json:"isbn13" validate:"required"`
	LanguageCode     *string  `json:"language_code" validate:"required"`
	NumPages         *int     `json:"num_pages" validate:"required"`
	RatingsCount     *int     `json:"ratings_count" validate:"required"`
	TextReviewsCount *int     `json:"text_reviews_count" validate:"required"`
	PublicationDate  *string  `json:"publication_date" validate:"required"`
	Publisher        *string  `json:"publisher" validate:"required"`
}

// Book converts a validated payload. Call Validate first.
func (n NewBook) Book() Book {
	b := Book{
		Title:            *n.Title,
		Authors:          slices.Clone(n.Authors),
		AverageRating:    *n.AverageRating,
		ISBN:             *n.ISBN,
		ISBN13:           *n.ISBN13,
		LanguageCode:     *n.LanguageCode,
		NumPages:         *n.NumPages,
		RatingsCount:     *n.RatingsCount,
		TextReviewsCount: *n.TextReviewsCount,
		PublicationDate:  *n.PublicationDate,
		Publisher:        *n.Publisher,
	}
	if n.ID != nil {
		b.ID = *n.ID
	}
	return b
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a payload fails validation.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks that every required field is present and in range.
func (n NewBook) Validate() error {
	return validateStruct(n)
}

// Validate checks the range of the supplied fields.
func (u Update) Validate() error {
	return validateStruct(u)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fe.Field())
		case "gte":
			message = fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
		case "lte":
			message = fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: message})
	}
	return out
}
