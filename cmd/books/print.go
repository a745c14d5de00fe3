package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookcatalog/internal/book"
)

var separator = strings.Repeat("=", 50)

func printBook(w io.Writer, b book.Book) {
	fields := [][2]string{
		{"id", b.ID},
		{"title", b.Title},
		{"authors", strings.Join(b.Authors, ", ")},
		{"average_rating", strconv.FormatFloat(b.AverageRating, 'f', -1, 64)},
		{"isbn", b.ISBN},
		{"isbn13", b.ISBN13},
		{"language_code", b.LanguageCode},
		{"num_pages", strconv.Itoa(b.NumPages)},
		{"ratings_count", strconv.Itoa(b.RatingsCount)},
		{"text_reviews_count", strconv.Itoa(b.TextReviewsCount)},
		{"publication_date", b.PublicationDate},
		{"publisher", b.Publisher},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f[0], f[1])
	}
	fmt.Fprintln(w, separator)
}

func printDeleted(w io.Writer, res book.DeleteResult) {
	fmt.Fprintln(w, res.Message)
	fmt.Fprintf(w, "id: %s\n", res.DeletedBook.ID)
	fmt.Fprintf(w, "title: %s\n", res.DeletedBook.Title)
	fmt.Fprintf(w, "authors: %s\n", strings.Join(res.DeletedBook.Authors, ", "))
	fmt.Fprintln(w, separator)
}
