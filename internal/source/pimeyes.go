package source

import (
	"context"

	"github.com/sells-group/people-aggregator/internal/model"
)

// PimEyes is the reverse face search adapter for pimeyes.com. The provider
// gates search behind a paid API, so the adapter reports an empty match set
// with a pointer at free alternatives instead of scraping.
type PimEyes struct{}

// NewPimEyes creates the PimEyes adapter.
func NewPimEyes() *PimEyes { return &PimEyes{} }

func (s *PimEyes) Name() string     { return "pimeyes" }
func (s *PimEyes) Category() string { return CategoryFaceSearch }

func (s *PimEyes) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldImage}
}

func (s *PimEyes) Search(_ context.Context, query model.Query) model.SourceResult {
	if query.Image == "" {
		return model.SourceResult{Source: s.Name()}
	}
	return model.SourceResult{
		Source:     s.Name(),
		Matches:    []model.FaceMatch{},
		Note:       "PimEyes requires an API subscription or a manual search via the website",
		Suggestion: "Use Google Images reverse search or TinEye as free alternatives",
	}
}
