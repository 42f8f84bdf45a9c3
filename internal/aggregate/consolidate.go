package aggregate

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/llm"
	"github.com/sells-group/people-aggregator/internal/model"
)

// Consolidate reduces the full source-result mapping into one profile. It
// never fails: any fault on the completion path degrades to the basic
// deterministic consolidation.
func (a *Aggregator) Consolidate(ctx context.Context, sources *model.SourceMap) *model.ConsolidatedProfile {
	if a.llm == nil {
		zap.L().Warn("aggregate: llm not configured, using basic consolidation")
		return basicConsolidation(sources)
	}

	raw, err := json.Marshal(sources)
	if err != nil {
		zap.L().Warn("aggregate: encode sources for consolidation", zap.Error(err))
		return basicConsolidation(sources)
	}

	out, err := a.llm.Complete(ctx, consolidationPrompt(string(raw)), consolidationTemperature)
	if err != nil {
		zap.L().Warn("aggregate: llm consolidation failed, using basic consolidation", zap.Error(err))
		return basicConsolidation(sources)
	}

	var profile model.ConsolidatedProfile
	if err := json.Unmarshal([]byte(llm.StripFences(out)), &profile); err != nil {
		zap.L().Warn("aggregate: unparseable consolidation response, using basic consolidation", zap.Error(err))
		return basicConsolidation(sources)
	}

	if len(profile.Metadata.SourcesUsed) == 0 {
		profile.Metadata.SourcesUsed = sourceNames(sources)
	}
	if profile.Metadata.DataQuality == "" {
		profile.Metadata.DataQuality = model.QualityMedium
	}
	// The model is asked for a timestamp but must not be trusted with one.
	profile.Metadata.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return &profile
}

// basicConsolidation collects contact details verbatim from every source in
// order. It is deterministic for a given sources map, and its metadata says
// so: quality low, method basic.
func basicConsolidation(sources *model.SourceMap) *model.ConsolidatedProfile {
	profile := &model.ConsolidatedProfile{
		Contact: model.Contact{
			Phones:    []model.Phone{},
			Emails:    []string{},
			Addresses: []model.Address{},
		},
		Relationships: model.Relationships{
			Relatives:  []model.Relative{},
			Associates: []string{},
		},
		OnlinePresence: model.OnlinePresence{
			SocialMedia: []model.Profile{},
			Websites:    []string{},
		},
		Metadata: model.ProfileMetadata{
			SourcesUsed:         sourceNames(sources),
			DataQuality:         model.QualityLow,
			ConsolidationMethod: "basic",
		},
	}

	for _, name := range sources.Names() {
		r, ok := sources.Get(name)
		if !ok {
			continue
		}
		for _, rec := range r.Records {
			profile.Contact.Phones = append(profile.Contact.Phones, rec.Phones...)
			profile.Contact.Emails = append(profile.Contact.Emails, rec.Emails...)
			profile.Contact.Addresses = append(profile.Contact.Addresses, rec.Addresses...)
		}
	}
	return profile
}

// sourceNames lists every attempted source, errored ones included. The
// metadata records what was consulted, not what succeeded.
func sourceNames(sources *model.SourceMap) []string {
	names := sources.Names()
	if names == nil {
		return []string{}
	}
	return names
}
