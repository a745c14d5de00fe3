package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookcatalog/internal/book"
)

// Client talks to the book catalog HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "books-cli/1.0",
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Message)
}

// SearchParams are the optional list filters. Nil fields are not sent.
type SearchParams struct {
	Rating   *float64
	NumPages *int
	Title    *string
	Limit    *int
	Skip     *int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	if p.Rating != nil {
		v.Set("rating", strconv.FormatFloat(*p.Rating, 'f', -1, 64))
	}
	if p.NumPages != nil {
		v.Set("num_pages", strconv.Itoa(*p.NumPages))
	}
	if p.Title != nil {
		v.Set("title", *p.Title)
	}
	if p.Limit != nil {
		v.Set("limit", strconv.Itoa(*p.Limit))
	}
	if p.Skip != nil {
		v.Set("skip", strconv.Itoa(*p.Skip))
	}
	return v
}

func (c *Client) Search(ctx context.Context, p SearchParams) ([]book.Book, error) {
	u := c.baseURL + "/book"
	if q := p.values().Encode(); q != "" {
		u += "?" + q
	}

	var books []book.Book
	if err := c.do(ctx, http.MethodGet, u, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) Get(ctx context.Context, id string) (book.Book, error) {
	var b book.Book
	err := c.do(ctx, http.MethodGet, c.bookURL(id), nil, &b)
	return b, err
}

func (c *Client) Update(ctx context.Context, id string, u book.Update) (book.Book, error) {
	var b book.Book
	err := c.do(ctx, http.MethodPut, c.bookURL(id), u, &b)
	return b, err
}

func (c *Client) Delete(ctx context.Context, id string) (book.DeleteResult, error) {
	var res book.DeleteResult
	err := c.do(ctx, http.MethodDelete, c.bookURL(id), nil, &res)
	return res, err
}

func (c *Client) bookURL(id string) string {
	return c.baseURL + "/book/" + url.PathEscape(id)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, u string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		if decodeErr == nil && env.Error != nil {
			se.Code = env.Error.Code
			se.Message = env.Error.Message
		}
		return se
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
