package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess_IncludesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/book", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	JSONSuccess(w, r, []string{"a"}, map[string]any{"count": 1})

	rr := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header.Get("Content-Type"))
	assert.True(t, rr.Envelope.Success)
	assert.Equal(t, "req-1", rr.Envelope.Meta["request_id"])
	assert.EqualValues(t, 1, rr.Envelope.Meta["count"])

	var data []string
	require.NoError(t, rr.DecodeData(&data))
	assert.Equal(t, []string{"a"}, data)
}

func TestJSONCreated_NoMetaWithoutRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	JSONCreated(w, httptest.NewRequest(http.MethodPost, "/book", nil), map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), `"meta"`)
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, httptest.NewRequest(http.MethodPost, "/book", nil), http.StatusUnprocessableEntity,
		"VALIDATION_ERROR", "Invalid book", []ErrorDetail{{Field: "title", Message: "title is required"}})

	rr := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.False(t, rr.Envelope.Success)
	assert.Equal(t, "VALIDATION_ERROR", rr.Envelope.Error.Code)
	assert.Equal(t, "Invalid book", rr.Envelope.Error.Message)
	require.Len(t, rr.Envelope.Error.Details, 1)
	assert.Equal(t, "title", rr.Envelope.Error.Details[0].Field)
}
