package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	count := flag.Int("count", 1000, "Number of books to generate")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, "console", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := seed(ctx, book.NewService(st.Books), *count, rand.New(rand.NewSource(rand.Int63())), logger); err != nil {
		logger.Fatal().Err(err).Msg("seed books")
	}
}

func seed(ctx context.Context, svc *book.Service, count int, rng *rand.Rand, logger zerolog.Logger) error {
	logger.Info().Int("count", count).Msg("generating books")
	for i := 0; i < count; i++ {
		if _, err := svc.Create(ctx, randomBook(rng, i)); err != nil {
			return fmt.Errorf("create book %d: %w", i+1, err)
		}
		if (i+1)%1000 == 0 {
			logger.Info().Int("done", i+1).Int("count", count).Msg("progress")
		}
	}
	logger.Info().Int("count", count).Msg("books inserted")
	return nil
}

var (
	languages  = []string{"eng", "en-US", "spa", "fre", "ger", "ita", "por", "jpn"}
	publishers = []string{"Penguin", "HarperCollins", "Oxford", "Cambridge", "MIT Press", "Springer", "Wiley", "Ace"}
	authors    = []string{"Ursula K. Le Guin", "Frank Herbert", "Octavia E. Butler", "Isaac Asimov", "Mary Shelley", "Jorge Luis Borges", "Italo Calvino", "Toni Morrison"}
	words      = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

func randomBook(rng *rand.Rand, i int) book.NewBook {
	title := fmt.Sprintf("The %s of %s", pick(rng, words), pick(rng, words))
	bookAuthors := []string{pick(rng, authors)}
	if rng.Intn(4) == 0 {
		bookAuthors = append(bookAuthors, pick(rng, authors))
	}
	rating := float64(rng.Intn(501)) / 100
	pages := 50 + rng.Intn(1200)
	ratings := rng.Intn(200_000)
	reviews := rng.Intn(ratings/10 + 1)
	isbn := fmt.Sprintf("%010d", i+1)
	isbn13 := fmt.Sprintf("978%010d", i+1)
	lang := pick(rng, languages)
	date := fmt.Sprintf("%d/%d/%d", 1+rng.Intn(12), 1+rng.Intn(28), 1950+rng.Intn(75))
	publisher := pick(rng, publishers)

	return book.NewBook{
		Title:            &title,
		Authors:          bookAuthors,
		AverageRating:    &rating,
		ISBN:             &isbn,
		ISBN13:           &isbn13,
		LanguageCode:     &lang,
		NumPages:         &pages,
		RatingsCount:     &ratings,
		TextReviewsCount: &reviews,
		PublicationDate:  &date,
		Publisher:        &publisher,
	}
}
