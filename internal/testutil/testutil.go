package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
)

// DunePayload returns a complete create payload without an identifier.
func DunePayload() map[string]any {
	return map[string]any{
		"title":              "Dune",
		"authors":            []string{"Frank Herbert"},
		"average_rating":     4.8,
		"isbn":               "0441013593",
		"isbn13":             "9780441013593",
		"language_code":      "eng",
		"num_pages":          412,
		"ratings_count":      100,
		"text_reviews_count": 10,
		"publication_date":   "1965-08-01",
		"publisher":          "Chilton",
	}
}

// Without returns a copy of payload with the given keys removed.
func Without(payload map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// Envelope mirrors the JSON envelope written by the httpx package.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code     int
	Header   http.Header
	Envelope Envelope
}

// RecordHTTPResponse decodes the recorded envelope.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var env Envelope
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &env)
	}

	return RecordResponse{
		Code:     result.StatusCode,
		Header:   result.Header,
		Envelope: env,
	}
}

// DecodeData unmarshals the envelope data into dst.
func (rr RecordResponse) DecodeData(dst any) error {
	return json.Unmarshal(rr.Envelope.Data, dst)
}
