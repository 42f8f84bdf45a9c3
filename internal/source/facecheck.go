package source

import (
	"context"

	"github.com/sells-group/people-aggregator/internal/model"
)

// FaceCheck is the reverse face search adapter for facecheck.id. Like
// PimEyes, the provider requires an API subscription, so the adapter
// reports an empty match set.
type FaceCheck struct{}

// NewFaceCheck creates the FaceCheck adapter.
func NewFaceCheck() *FaceCheck { return &FaceCheck{} }

func (s *FaceCheck) Name() string     { return "facecheck" }
func (s *FaceCheck) Category() string { return CategoryFaceSearch }

func (s *FaceCheck) Capabilities() []model.QueryField {
	return []model.QueryField{model.FieldImage}
}

func (s *FaceCheck) Search(_ context.Context, query model.Query) model.SourceResult {
	if query.Image == "" {
		return model.SourceResult{Source: s.Name()}
	}
	return model.SourceResult{
		Source:     s.Name(),
		Matches:    []model.FaceMatch{},
		Note:       "FaceCheck.ID requires an API subscription",
		Suggestion: "Use Google Images reverse search or TinEye as free alternatives",
	}
}
