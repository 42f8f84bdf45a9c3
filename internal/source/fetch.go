package source

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/people-aggregator/internal/config"
)

const defaultTimeout = 15 * time.Second

// Fetcher is the shared HTTP helper for adapters. Every outbound call
// carries the client timeout so an unreachable provider cannot stall a
// phase's join point.
type Fetcher struct {
	http      *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher from source configuration.
func NewFetcher(cfg config.SourceConfig) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if cfg.TimeoutSecs <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: cfg.UserAgent,
	}
}

func (f *Fetcher) do(ctx context.Context, method, rawURL string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" && f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: send request")
	}
	return resp, nil
}

// Document GETs a page and parses it with goquery. Non-200 statuses are
// errors.
func (f *Fetcher) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	resp, err := f.do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch: unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse html")
	}
	return doc, nil
}

// GetJSON GETs a URL and decodes the JSON response body into out.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	resp, err := f.do(ctx, http.MethodGet, rawURL, nil, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("fetch: unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrap(err, "fetch: decode json")
	}
	return nil
}

// PostJSON POSTs a JSON payload and returns the response content type and
// raw body. Non-200 statuses are errors.
func (f *Fetcher) PostJSON(ctx context.Context, rawURL string, payload any) (string, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", nil, eris.Wrap(err, "fetch: marshal payload")
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := f.do(ctx, http.MethodPost, rawURL, bytes.NewReader(body), header)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, eris.Errorf("fetch: unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, eris.Wrap(err, "fetch: read response")
	}
	return resp.Header.Get("Content-Type"), respBody, nil
}

// Exists probes a URL and reports whether it answered 200. Non-200 answers
// are not errors; only transport failures are.
func (f *Fetcher) Exists(ctx context.Context, rawURL string) (bool, error) {
	resp, err := f.do(ctx, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK, nil
}
