package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"bookcatalog/internal/apiclient"
	"bookcatalog/internal/book"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	actionSearch = "search"
	actionGet    = "get"
	actionUpdate = "update"
	actionDelete = "delete"
)

// options holds raw flag values. Use request to find out which were set.
type options struct {
	id           string
	rating       float64
	pages        int
	title        string
	limit        int
	skip         int
	authors      []string
	isbn         string
	isbn13       string
	language     string
	ratingsCount int
	reviewsCount int
	pubDate      string
	publisher    string
	verbose      bool
}

// request is the set of flags the user actually supplied.
type request struct {
	ID     *string
	Search apiclient.SearchParams
	Update book.Update
}

func (o *options) request(flags *pflag.FlagSet) request {
	var req request
	if flags.Changed("id") {
		req.ID = &o.id
	}
	if flags.Changed("rating") {
		req.Search.Rating = &o.rating
	}
	if flags.Changed("pages") {
		req.Search.NumPages = &o.pages
		req.Update.NumPages = &o.pages
	}
	if flags.Changed("title") {
		req.Search.Title = &o.title
		req.Update.Title = &o.title
	}
	if flags.Changed("limit") {
		req.Search.Limit = &o.limit
	}
	if flags.Changed("skip") {
		req.Search.Skip = &o.skip
	}
	if flags.Changed("authors") {
		req.Update.Authors = o.authors
	}
	if flags.Changed("isbn") {
		req.Update.ISBN = &o.isbn
	}
	if flags.Changed("isbn13") {
		req.Update.ISBN13 = &o.isbn13
	}
	if flags.Changed("language") {
		req.Update.LanguageCode = &o.language
	}
	if flags.Changed("ratings_count") {
		req.Update.RatingsCount = &o.ratingsCount
	}
	if flags.Changed("reviews_count") {
		req.Update.TextReviewsCount = &o.reviewsCount
	}
	if flags.Changed("pub_date") {
		req.Update.PublicationDate = &o.pubDate
	}
	if flags.Changed("publisher") {
		req.Update.Publisher = &o.publisher
	}
	return req
}

// validateRequest checks flag combinations before any request is sent.
func validateRequest(action string, req request) error {
	if req.ID != nil && action == actionSearch {
		return fmt.Errorf("can't use --id with action %s", action)
	}
	if req.Search.Rating != nil && action != actionSearch {
		return errors.New("--rating can only be used with the search action")
	}
	if action != actionSearch && (req.ID == nil || *req.ID == "") {
		return fmt.Errorf("--id is required for action %s", action)
	}
	if action == actionUpdate && req.Update.IsEmpty() {
		return errors.New("At least one field must be provided for updating the book.")
	}
	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	root := newRootCmd(stdout, &logger)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var se *apiclient.StatusError
	if errors.As(err, &se) {
		fmt.Fprintf(stdout, "Error: %s\n", se)
	} else {
		logger.Error().Err(err).Msg("books failed")
	}
	return 1
}

func newRootCmd(out io.Writer, logger *zerolog.Logger) *cobra.Command {
	var opts options
	v := viper.New()
	v.SetDefault("url", "http://localhost:8000")
	v.SetDefault("timeout", 10*time.Second)
	_ = v.BindEnv("url", "BOOKS_API_URL")
	_ = v.BindEnv("timeout", "BOOKS_API_TIMEOUT")

	root := &cobra.Command{
		Use:           "books",
		Short:         "Search and manage the book catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				*logger = logger.Level(zerolog.DebugLevel)
			}
			logger.Debug().Str("url", v.GetString("url")).Msg("Welcome to books catalog")
		},
	}

	pf := root.PersistentFlags()
	pf.String("url", "", "Base URL of the books API (env BOOKS_API_URL)")
	pf.Duration("timeout", 0, "HTTP timeout (env BOOKS_API_TIMEOUT)")
	pf.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	pf.StringVarP(&opts.id, "id", "i", "", "Book ID for get, update and delete")
	pf.Float64VarP(&opts.rating, "rating", "r", 0, "Minimum average rating, 0 to 5 (search only)")
	pf.IntVarP(&opts.pages, "pages", "p", 0, "Exact number of pages")
	pf.StringVarP(&opts.title, "title", "t", "", "Title (partial, case-insensitive match for search)")
	pf.IntVarP(&opts.limit, "limit", "l", 0, "Limit the number of results returned")
	pf.IntVarP(&opts.skip, "skip", "s", 0, "Skip the first n results")
	pf.StringSliceVarP(&opts.authors, "authors", "a", nil, "List of authors")
	pf.StringVar(&opts.isbn, "isbn", "", "ISBN of the book")
	pf.StringVar(&opts.isbn13, "isbn13", "", "ISBN-13 of the book")
	pf.StringVar(&opts.language, "language", "", "Language code")
	pf.IntVar(&opts.ratingsCount, "ratings_count", 0, "Number of ratings")
	pf.IntVar(&opts.reviewsCount, "reviews_count", 0, "Number of text reviews")
	pf.StringVar(&opts.pubDate, "pub_date", "", "Publication date")
	pf.StringVar(&opts.publisher, "publisher", "", "Publisher name")
	_ = v.BindPFlag("url", pf.Lookup("url"))
	_ = v.BindPFlag("timeout", pf.Lookup("timeout"))

	newAction := func(action, short string, run func(*cobra.Command, *apiclient.Client, request) error) *cobra.Command {
		return &cobra.Command{
			Use:   action,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				req := opts.request(cmd.Flags())
				if err := validateRequest(action, req); err != nil {
					return err
				}
				client := apiclient.NewClient(v.GetString("url"), v.GetDuration("timeout"))
				return run(cmd, client, req)
			},
		}
	}

	root.AddCommand(
		newAction(actionSearch, "List books matching the filters", func(cmd *cobra.Command, c *apiclient.Client, req request) error {
			books, err := c.Search(cmd.Context(), req.Search)
			if err != nil {
				return err
			}
			for _, b := range books {
				printBook(out, b)
			}
			return nil
		}),
		newAction(actionGet, "Show a single book", func(cmd *cobra.Command, c *apiclient.Client, req request) error {
			b, err := c.Get(cmd.Context(), *req.ID)
			if err != nil {
				return err
			}
			printBook(out, b)
			return nil
		}),
		newAction(actionUpdate, "Change fields of a book", func(cmd *cobra.Command, c *apiclient.Client, req request) error {
			b, err := c.Update(cmd.Context(), *req.ID, req.Update)
			if err != nil {
				return err
			}
			printBook(out, b)
			return nil
		}),
		newAction(actionDelete, "Delete a book", func(cmd *cobra.Command, c *apiclient.Client, req request) error {
			res, err := c.Delete(cmd.Context(), *req.ID)
			if err != nil {
				return err
			}
			printDeleted(out, res)
			return nil
		}),
	)
	return root
}
