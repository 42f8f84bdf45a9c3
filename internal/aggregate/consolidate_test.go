package aggregate

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/people-aggregator/internal/model"
	"github.com/sells-group/people-aggregator/internal/source"
)

func sampleSources() *model.SourceMap {
	m := model.NewSourceMap()
	m.Set("fastpeoplesearch", model.SourceResult{
		Source: "fastpeoplesearch",
		Records: []model.Record{{
			Name:      "John Smith",
			Age:       "42",
			Phones:    []model.Phone{{Number: "555-0100", Type: "mobile"}},
			Emails:    []string{"john@example.com"},
			Addresses: []model.Address{{Full: "1 Main St", Type: "current"}},
		}},
	})
	m.Set("checkthem", model.Failure("checkthem", eris.New("upstream timeout")))
	m.Set("socialmedia", model.SourceResult{Source: "socialmedia"})
	return m
}

func TestConsolidate_BasicWithoutLLM(t *testing.T) {
	agg := New(source.NewRegistry(), nil)
	got := agg.Consolidate(context.Background(), sampleSources())

	require.NotNil(t, got)
	assert.Equal(t, "basic", got.Metadata.ConsolidationMethod)
	assert.Equal(t, model.QualityLow, got.Metadata.DataQuality)
	// Attempted sources are listed, errored ones included.
	assert.Equal(t, []string{"fastpeoplesearch", "checkthem", "socialmedia"}, got.Metadata.SourcesUsed)
	assert.Empty(t, got.Metadata.LastUpdated)

	require.Len(t, got.Contact.Phones, 1)
	assert.Equal(t, "555-0100", got.Contact.Phones[0].Number)
	assert.Equal(t, []string{"john@example.com"}, got.Contact.Emails)
	require.Len(t, got.Contact.Addresses, 1)
}

func TestConsolidate_BasicIsDeterministic(t *testing.T) {
	agg := New(source.NewRegistry(), nil)
	first := agg.Consolidate(context.Background(), sampleSources())
	second := agg.Consolidate(context.Background(), sampleSources())
	assert.Equal(t, first, second)
}

func TestConsolidate_BasicEmptyInput(t *testing.T) {
	agg := New(source.NewRegistry(), nil)
	got := agg.Consolidate(context.Background(), model.NewSourceMap())

	require.NotNil(t, got)
	assert.Equal(t, []string{}, got.Metadata.SourcesUsed)
	assert.Empty(t, got.Contact.Phones)
	assert.Empty(t, got.Contact.Emails)
}

func TestConsolidate_LLMResponseParsed(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n" + `{
		"person": {"name": "John Smith", "confidence": 0.92, "age": 42},
		"contact": {"phones": [{"number": "555-0100", "type": "mobile", "confidence": 0.8}], "emails": ["john@example.com"], "addresses": []},
		"relationships": {"relatives": [], "associates": []},
		"online_presence": {"social_media": [], "websites": []},
		"metadata": {"sources_used": ["fastpeoplesearch"], "data_quality": "high", "last_updated": "made-up-by-model"}
	}` + "\n```"}

	agg := New(source.NewRegistry(), completer)
	got := agg.Consolidate(context.Background(), sampleSources())

	require.NotNil(t, got)
	assert.Equal(t, "John Smith", got.Person.Name)
	assert.Equal(t, model.LooseString("42"), got.Person.Age)
	assert.InDelta(t, 0.92, got.Person.Confidence, 1e-9)
	assert.Equal(t, model.QualityHigh, got.Metadata.DataQuality)
	assert.Equal(t, []string{"fastpeoplesearch"}, got.Metadata.SourcesUsed)
	// The model's timestamp is replaced with a real one.
	assert.NotEqual(t, "made-up-by-model", got.Metadata.LastUpdated)
	assert.NotEmpty(t, got.Metadata.LastUpdated)

	require.Len(t, completer.temps, 1)
	assert.InDelta(t, consolidationTemperature, completer.temps[0], 1e-9)
	assert.Contains(t, completer.prompts[0], "fastpeoplesearch")
}

func TestConsolidate_LLMFillsMissingMetadata(t *testing.T) {
	completer := &fakeCompleter{response: `{"person": {"name": "John Smith"}}`}
	agg := New(source.NewRegistry(), completer)

	got := agg.Consolidate(context.Background(), sampleSources())
	require.NotNil(t, got)
	assert.Equal(t, []string{"fastpeoplesearch", "checkthem", "socialmedia"}, got.Metadata.SourcesUsed)
	assert.Equal(t, model.QualityMedium, got.Metadata.DataQuality)
}

func TestConsolidate_LLMErrorFallsBack(t *testing.T) {
	completer := &fakeCompleter{err: eris.New("rate limited")}
	agg := New(source.NewRegistry(), completer)

	got := agg.Consolidate(context.Background(), sampleSources())
	require.NotNil(t, got)
	assert.Equal(t, "basic", got.Metadata.ConsolidationMethod)
	assert.Len(t, got.Contact.Phones, 1)
}

func TestConsolidate_UnparseableResponseFallsBack(t *testing.T) {
	completer := &fakeCompleter{response: "I could not produce JSON, sorry."}
	agg := New(source.NewRegistry(), completer)

	got := agg.Consolidate(context.Background(), sampleSources())
	require.NotNil(t, got)
	assert.Equal(t, "basic", got.Metadata.ConsolidationMethod)
}
