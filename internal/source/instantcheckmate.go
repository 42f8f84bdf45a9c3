package source

import (
	"context"

	"github.com/sells-group/people-aggregator/internal/model"
)

// InstantCheckmate covers instantcheckmate.com. The site serves results
// only behind its paywall flow, so lookups currently contribute nothing;
// the adapter stays registered so its capability routing is in place.
type InstantCheckmate struct {
	fetch   *Fetcher
	baseURL string
}

// NewInstantCheckmate creates the InstantCheckmate adapter.
func NewInstantCheckmate(f *Fetcher) *InstantCheckmate {
	return &InstantCheckmate{
		fetch:   f,
		baseURL: "https://www.instantcheckmate.com",
	}
}

func (s *InstantCheckmate) Name() string     { return "instantcheckmate" }
func (s *InstantCheckmate) Category() string { return CategoryPeople }

func (s *InstantCheckmate) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldName, model.FieldPhone}
}

func (s *InstantCheckmate) Search(_ context.Context, _ model.Query) model.SourceResult {
	return model.SourceResult{
		Source:  s.Name(),
		Records: []model.Record{},
	}
}
