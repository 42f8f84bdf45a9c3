package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/people-aggregator/internal/config"
	"github.com/sells-group/people-aggregator/internal/model"
)

type stubSource struct {
	name     string
	category string
	caps     []model.QueryField
}

func (s *stubSource) Name() string                     { return s.name }
func (s *stubSource) Category() string                 { return s.category }
func (s *stubSource) Capabilities() []model.QueryField { return s.caps }
func (s *stubSource) Search(context.Context, model.Query) model.SourceResult {
	return model.SourceResult{Source: s.name}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubSource{name: "alpha", category: CategoryPeople})

	got := r.Get("alpha")
	require.NotNil(t, got)
	assert.Equal(t, "alpha", got.Name())
	assert.Nil(t, r.Get("missing"))
}

func TestRegistry_NamesPreserveOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubSource{name: "c"})
	r.Register(&stubSource{name: "a"})
	r.Register(&stubSource{name: "b"})

	assert.Equal(t, []string{"c", "a", "b"}, r.Names())
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubSource{name: "a", category: CategoryPeople})
	r.Register(&stubSource{name: "b", category: CategorySocial})
	r.Register(&stubSource{name: "a", category: CategorySearch})

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, CategorySearch, r.Get("a").Category())
}

func TestRegistry_Categories(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubSource{name: "pim", category: CategoryFaceSearch})
	r.Register(&stubSource{name: "fps", category: CategoryPeople})
	r.Register(&stubSource{name: "ct", category: CategoryPeople})

	got := r.Categories()
	assert.Equal(t, []string{"pim"}, got[CategoryFaceSearch])
	assert.Equal(t, []string{"fps", "ct"}, got[CategoryPeople])
}

func TestSupports(t *testing.T) {
	s := &stubSource{caps: []model.QueryField{model.FieldName, model.FieldPhone}}
	assert.True(t, Supports(s, model.FieldName))
	assert.True(t, Supports(s, model.FieldPhone))
	assert.False(t, Supports(s, model.FieldImage))
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r, NewFetcher(config.SourceConfig{}))

	assert.Equal(t, []string{
		"pimeyes",
		"facecheck",
		"fastpeoplesearch",
		"checkthem",
		"instantcheckmate",
		"searchengine",
		"socialmedia",
	}, r.Names())
}
