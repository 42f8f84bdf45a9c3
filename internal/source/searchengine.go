package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/people-aggregator/internal/model"
)

const maxConcurrentQueries = 4

// SearchEngine scrapes Google result pages with advanced operators, falling
// back to Bing per query when Google refuses to answer.
type SearchEngine struct {
	fetch      *Fetcher
	googleBase string
	bingBase   string
}

// NewSearchEngine creates the search engine adapter.
func NewSearchEngine(f *Fetcher) *SearchEngine {
	return &SearchEngine{
		fetch:      f,
		googleBase: "https://www.google.com",
		bingBase:   "https://www.bing.com",
	}
}

func (s *SearchEngine) Name() string     { return "searchengine" }
func (s *SearchEngine) Category() string { return CategorySearch }

func (s *SearchEngine) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldName, model.FieldEmail, model.FieldUsername, model.FieldPhone}
}

func (s *SearchEngine) Search(ctx context.Context, query model.Query) model.SourceResult {
	type group struct {
		typ     string
		value   string
		queries []string
	}
	var groups []group

	if query.Name != "" {
		qs := []string{
			fmt.Sprintf("%q", query.Name),
			fmt.Sprintf("site:linkedin.com %q", query.Name),
			fmt.Sprintf("site:facebook.com %q", query.Name),
			fmt.Sprintf("%q (contact OR email OR phone)", query.Name),
		}
		if query.Location != "" {
			qs = append(qs, fmt.Sprintf("%q %s", query.Name, query.Location))
		}
		groups = append(groups, group{typ: "person", value: query.Name, queries: qs})
	}
	if query.Email != "" {
		qs := []string{
			fmt.Sprintf("%q", query.Email),
			fmt.Sprintf("filetype:pdf %q", query.Email),
		}
		if at := strings.IndexByte(query.Email, '@'); at >= 0 {
			qs = append(qs, fmt.Sprintf("%q -site:%s", query.Email, query.Email[at+1:]))
		}
		groups = append(groups, group{typ: "email", value: query.Email, queries: qs})
	}
	if query.Username != "" {
		platforms := []string{"facebook", "twitter", "instagram", "linkedin", "github", "reddit"}
		qs := make([]string, 0, len(platforms))
		for _, p := range platforms {
			qs = append(qs, fmt.Sprintf("site:%s.com %q", p, query.Username))
		}
		groups = append(groups, group{typ: "username", value: query.Username, queries: qs})
	}
	if query.Phone != "" {
		groups = append(groups, group{typ: "phone", value: query.Phone, queries: []string{
			fmt.Sprintf("%q", query.Phone),
			fmt.Sprintf("%q (contact OR profile)", query.Phone),
		}})
	}

	var (
		mu      sync.Mutex
		queries []model.EngineQuery
		errs    []string
		hits    int
	)

	for _, grp := range groups {
		results := make([][]model.WebHit, len(grp.queries))

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentQueries)
		for i, q := range grp.queries {
			g.Go(func() error {
				found, err := s.webSearch(gCtx, q)
				if err != nil {
					zap.L().Debug("searchengine: query failed",
						zap.String("query", q),
						zap.Error(err),
					)
					mu.Lock()
					errs = append(errs, err.Error())
					mu.Unlock()
					return nil
				}
				results[i] = found
				return nil
			})
		}
		_ = g.Wait()

		eq := model.EngineQuery{Type: grp.typ, Query: grp.value, Results: []model.WebHit{}}
		for _, r := range results {
			eq.Results = append(eq.Results, r...)
		}
		hits += len(eq.Results)
		queries = append(queries, eq)
	}

	if hits == 0 && len(errs) > 0 {
		return model.Failure(s.Name(), eris.New(strings.Join(errs, "; ")))
	}
	return model.SourceResult{
		Source:  s.Name(),
		Queries: queries,
	}
}

// webSearch tries Google first and falls back to Bing for the same query.
func (s *SearchEngine) webSearch(ctx context.Context, query string) ([]model.WebHit, error) {
	hits, gErr := s.googleSearch(ctx, query)
	if gErr == nil {
		return hits, nil
	}
	hits, bErr := s.bingSearch(ctx, query)
	if bErr == nil {
		return hits, nil
	}
	return nil, eris.Wrap(gErr, "searchengine: all engines failed")
}

func (s *SearchEngine) googleSearch(ctx context.Context, query string) ([]model.WebHit, error) {
	u := s.googleBase + "/search?q=" + url.QueryEscape(query) + "&num=10"
	doc, err := s.fetch.Document(ctx, u)
	if err != nil {
		return nil, eris.Wrap(err, "searchengine: google")
	}

	var hits []model.WebHit
	doc.Find("div.g").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		href := sel.Find("a").First().AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		hits = append(hits, model.WebHit{
			Title:      title,
			URL:        href,
			Snippet:    strings.TrimSpace(sel.Find(".VwiC3b, .IsZvec").First().Text()),
			DisplayURL: displayHost(href),
		})
	})
	return hits, nil
}

func (s *SearchEngine) bingSearch(ctx context.Context, query string) ([]model.WebHit, error) {
	u := s.bingBase + "/search?q=" + url.QueryEscape(query) + "&count=10"
	doc, err := s.fetch.Document(ctx, u)
	if err != nil {
		return nil, eris.Wrap(err, "searchengine: bing")
	}

	var hits []model.WebHit
	doc.Find("li.b_algo").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h2").First().Text())
		href := sel.Find("a").First().AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		hits = append(hits, model.WebHit{
			Title:      title,
			URL:        href,
			Snippet:    strings.TrimSpace(sel.Find("p").First().Text()),
			DisplayURL: displayHost(href),
		})
	})
	return hits, nil
}

func displayHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Host
}
