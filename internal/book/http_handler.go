package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"

	"github.com/rs/zerolog"
)

type HTTPHandler struct {
	service *Service
	logger  zerolog.Logger
}

func NewHTTPHandler(service *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the book endpoints on mux.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /book", h.Create)
	mux.HandleFunc("POST /book/{$}", h.Create)
	mux.HandleFunc("GET /book", h.List)
	mux.HandleFunc("GET /book/{$}", h.List)
	mux.HandleFunc("GET /book/{id}", h.Get)
	mux.HandleFunc("PUT /book/{id}", h.Update)
	mux.HandleFunc("DELETE /book/{id}", h.Delete)
}

// Create handles POST /book/
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /book/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in NewBook
	if !h.decode(w, r, &in) {
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, created)
}

// List handles GET /book/
// @Summary Search books
// @Tags books
// @Produce json
// @Param rating query number false "Minimum average rating"
// @Param num_pages query int false "Exact page count"
// @Param title query string false "Title substring"
// @Param limit query int false "Maximum number of results"
// @Param skip query int false "Number of results to skip"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /book/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	q, details := parseQuery(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", details)
		return
	}

	books, err := h.service.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	meta := map[string]any{"count": len(books)}
	if q.Limit != nil {
		meta["limit"] = *q.Limit
	}
	if q.Skip != nil {
		meta["skip"] = *q.Skip
	}
	httpx.JSONSuccess(w, r, books, meta)
}

// Get handles GET /book/{id}
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /book/{id}
// @Summary Partially update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var u Update
	if !h.decode(w, r, &u) {
		return
	}

	b, err := h.service.Update(r.Context(), r.PathValue("id"), u)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /book/{id}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, res, nil)
}

func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", []httpx.ErrorDetail{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		}})
	case errors.As(err, &sizeErr):
		httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Malformed JSON body", nil)
	case errors.Is(err, io.EOF):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body is required", nil)
	default:
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
	}
	return false
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs ValidationErrors
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Book with ID %s not found", r.PathValue("id")), nil)
	case errors.Is(err, ErrEmptyUpdate):
		httpx.JSONError(w, r, http.StatusBadRequest, "EMPTY_UPDATE", "At least one field must be provided", nil)
	case errors.As(err, &verrs):
		details := make([]httpx.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
		}
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", details)
	default:
		h.logger.Error().
			Err(err).
			Str("request_id", httpx.RequestIDFrom(r)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("book request failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func parseQuery(r *http.Request) (Query, []httpx.ErrorDetail) {
	values := r.URL.Query()
	var q Query
	var details []httpx.ErrorDetail

	if s := values.Get("rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "rating", Message: "rating must be a number"})
		} else {
			q.MinRating = &v
		}
	}

	pages := values.Get("num_pages")
	if pages == "" {
		pages = values.Get("pages")
	}
	if pages != "" {
		v, err := strconv.Atoi(pages)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "num_pages", Message: "num_pages must be an integer"})
		} else {
			q.NumPages = &v
		}
	}

	if s := values.Get("title"); s != "" {
		q.Title = &s
	}

	for _, name := range []string{"limit", "skip"} {
		s := values.Get(name)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			details = append(details, httpx.ErrorDetail{Field: name, Message: name + " must be a non-negative integer"})
			continue
		}
		if name == "limit" {
			q.Limit = &v
		} else {
			q.Skip = &v
		}
	}

	return q, details
}
