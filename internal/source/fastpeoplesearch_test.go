package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/people-aggregator/internal/config"
	"github.com/sells-group/people-aggregator/internal/model"
)

const personCardHTML = `<html><body>
<div class="card">
  <h2 class="card-title">John Smith</h2>
  <span class="age">Age 42</span>
  <div class="address-line current">1 Main St, Austin, TX</div>
  <div class="address-line">9 Old Rd, Dallas, TX</div>
  <span class="phone mobile">555-0100</span>
  <span class="phone landline">555-0200</span>
  <span class="relative">Jane Smith</span>
  <span class="associate">Bob Jones</span>
  <span class="email">john@example.com</span>
  <span class="email">not-an-email</span>
</div>
<div class="card">
  <h2 class="card-title">John Smith</h2>
  <span class="age">Age 42</span>
</div>
<div class="card">
  <span class="age">Age 99</span>
</div>
</body></html>`

func testFetcher() *Fetcher {
	return NewFetcher(config.SourceConfig{TimeoutSecs: 2, UserAgent: "test-agent"})
}

func TestFastPeopleSearch_SearchByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/John-Smith_Austin-TX", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(personCardHTML))
	}))
	defer srv.Close()

	s := NewFastPeopleSearch(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith", Location: "Austin, TX"})
	require.False(t, result.Failed())
	// Duplicate card collapses, nameless card is dropped.
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "John Smith", rec.Name)
	assert.Equal(t, "42", rec.Age)
	require.Len(t, rec.Addresses, 2)
	assert.Equal(t, "current", rec.Addresses[0].Type)
	assert.Equal(t, "previous", rec.Addresses[1].Type)
	require.Len(t, rec.Phones, 2)
	assert.Equal(t, "mobile", rec.Phones[0].Type)
	assert.Equal(t, "landline", rec.Phones[1].Type)
	assert.Equal(t, []string{"john@example.com"}, rec.Emails)
	require.Len(t, rec.Relatives, 1)
	assert.Equal(t, "possible relative", rec.Relatives[0].Relationship)
	assert.Equal(t, []string{"Bob Jones"}, rec.Associates)
}

func TestFastPeopleSearch_SearchByPhone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phone/5550100", r.URL.Path)
		_, _ = w.Write([]byte(personCardHTML))
	}))
	defer srv.Close()

	s := NewFastPeopleSearch(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Phone: "(555) 010-0"})
	require.False(t, result.Failed())
	assert.NotEmpty(t, result.Records)
}

func TestFastPeopleSearch_SingleWordNameSkipped(t *testing.T) {
	s := NewFastPeopleSearch(testFetcher())
	s.baseURL = "http://127.0.0.1:0"

	result := s.Search(context.Background(), model.Query{Name: "Cher"})
	assert.False(t, result.Failed())
	assert.Empty(t, result.Records)
}

func TestFastPeopleSearch_AllLookupsFailing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewFastPeopleSearch(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith"})
	assert.True(t, result.Failed())
	assert.Equal(t, "fastpeoplesearch", result.Source)
}

func TestFastPeopleSearch_PartialFailureStillSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/phone/5550100" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(personCardHTML))
	}))
	defer srv.Close()

	s := NewFastPeopleSearch(testFetcher())
	s.baseURL = srv.URL

	result := s.Search(context.Background(), model.Query{Name: "John Smith", Phone: "555-0100"})
	assert.False(t, result.Failed())
	assert.NotEmpty(t, result.Records)
}
