package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

func TestSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[{"inv": "A", "material": "stone"}, {"material": "no id"}]`))
	}))
	defer srv.Close()

	records, err := NewSource(srv.URL, "inv").Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].ID)
}

func TestSource_Load_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewSource(srv.URL, "inv").Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
}

func TestSource_Load_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := NewSource(srv.URL, "inv").Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
}

func TestSource_Load_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	_, err := NewSource(srv.URL, "inv").Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
