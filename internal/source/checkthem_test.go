package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/people-aggregator/internal/model"
)

func TestCheckThem_JSONAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "John Smith", req["name"])
		assert.Equal(t, "Austin, TX", req["location"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"John Smith","age":"42"},{"name":"John Smith","age":"42"}]}`))
	}))
	defer srv.Close()

	s := NewCheckThem(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith", Location: "Austin, TX"})
	require.False(t, result.Failed())
	require.Len(t, result.Records, 1)
	assert.Equal(t, "John Smith", result.Records[0].Name)
}

func TestCheckThem_HTMLAnswerYieldsNoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer srv.Close()

	s := NewCheckThem(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith"})
	assert.False(t, result.Failed())
	assert.Empty(t, result.Records)
}

func TestCheckThem_UpstreamErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewCheckThem(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith"})
	assert.True(t, result.Failed())
}

func TestCheckThem_NoNameNoCall(t *testing.T) {
	s := NewCheckThem(testFetcher())
	s.baseURL = "http://127.0.0.1:0"

	result := s.Search(context.Background(), model.Query{Phone: "555-0100"})
	assert.False(t, result.Failed())
	assert.Empty(t, result.Records)
}
