package infer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shema/internal/schema"
)

type stubGenerator struct {
	cand *Candidate
	err  error
	got  Request
}

func (s *stubGenerator) Suggest(_ context.Context, req Request) (*Candidate, error) {
	s.got = req
	return s.cand, s.err
}

func TestSuggestIdentityInjection(t *testing.T) {
	e := NewEngine(nil, 0, nil)
	res := e.Suggest(context.Background(), Request{
		Instruction: "create widgets",
		Mode:        ModeNewDefinition,
	})

	assert.Equal(t, "widgets", res.DefinitionKey)
	require.Contains(t, res.Definition.Properties, "id")
	assert.Equal(t, "uuid", res.Definition.Properties["id"].Format)
	assert.Equal(t, []string{"id"}, res.Definition.Required)
	assert.Equal(t, []string{"id"}, res.Definition.PrimaryKey)
}

func TestSuggestNewDefinitionPipeline(t *testing.T) {
	e := NewEngine(nil, 0, nil)
	res := e.Suggest(context.Background(), Request{
		Instruction: "create projects with fields: status enum: planned, active, done and FK: owner_id -> users.id",
	})

	assert.Equal(t, ModeNewDefinition, res.Mode)
	assert.Equal(t, "projects", res.DefinitionKey)
	assert.Equal(t, "Project", res.Definition.Title)
	assert.Equal(t, "object", res.Definition.Type)

	require.Contains(t, res.Definition.Properties, "status")
	assert.Equal(t, []string{"planned", "active", "done"}, res.Definition.Properties["status"].Enum)

	require.Contains(t, res.Definition.Properties, "owner_id")
	assert.Equal(t, "users", res.Definition.Properties["owner_id"].RefTable)

	require.NotNil(t, res.Definition.AdditionalProperties)
	assert.False(t, *res.Definition.AdditionalProperties)
}

func TestSuggestExtendMergesIntoExisting(t *testing.T) {
	existing := schema.Context{
		"projects": &schema.EntityFragment{
			Title:      "Project",
			Properties: map[string]*schema.FieldSpec{"name": {Type: "string"}},
			Required:   []string{"name"},
			PrimaryKey: []string{"id"},
		},
	}
	e := NewEngine(nil, 0, nil)
	res := e.Suggest(context.Background(), Request{
		Instruction: "add deadline_at and budget (number)",
		Mode:        ModeExtendEntity,
		Target:      "projects",
		Context:     existing,
	})

	assert.Equal(t, "projects", res.DefinitionKey)
	assert.Contains(t, res.Definition.Properties, "name")
	assert.Contains(t, res.Definition.Properties, "deadline_at")
	assert.Contains(t, res.Definition.Properties, "budget")
	assert.Equal(t, []string{"name"}, res.Definition.Required)
	// identity в extend не подсеваем
	assert.NotContains(t, res.Definition.Properties, "id")
	// исходный контекст не тронут
	assert.NotContains(t, existing["projects"].Properties, "budget")
}

func TestSuggestExtendMissingTargetDegradesToNew(t *testing.T) {
	e := NewEngine(nil, 0, nil)
	res := e.Suggest(context.Background(), Request{
		Instruction: "add note (string)",
		Mode:        ModeExtendEntity,
		Target:      "gadgets",
		Context:     schema.Context{},
	})
	assert.Equal(t, "gadgets", res.DefinitionKey)
	assert.Contains(t, res.Definition.Properties, "note")
	assert.Equal(t, "object", res.Definition.Type)
}

func TestSuggestGeneratorCandidateWins(t *testing.T) {
	gen := &stubGenerator{cand: &Candidate{
		DefinitionKey: "tickets",
		Definition: &schema.EntityFragment{
			Title:      "Ticket",
			Properties: map[string]*schema.FieldSpec{"subject": {Type: "weird"}},
		},
	}}
	e := NewEngine(gen, time.Second, nil)
	res := e.Suggest(context.Background(), Request{Instruction: "create tickets"})

	assert.Equal(t, "tickets", res.DefinitionKey)
	require.Contains(t, res.Definition.Properties, "subject")
	// недоверенный кандидат всё равно нормализуется
	assert.Equal(t, "string", res.Definition.Properties["subject"].Type)
	require.NotNil(t, res.Definition.AdditionalProperties)
	assert.False(t, *res.Definition.AdditionalProperties)
}

func TestSuggestGeneratorErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	e := NewEngine(gen, time.Second, nil)
	res := e.Suggest(context.Background(), Request{Instruction: "create projects"})

	assert.Equal(t, "projects", res.DefinitionKey)
	assert.Contains(t, res.Definition.Properties, "id")
}

func TestSuggestGeneratorIncompleteCandidateFallsBack(t *testing.T) {
	for _, cand := range []*Candidate{
		nil,
		{DefinitionKey: "", Definition: &schema.EntityFragment{}},
		{DefinitionKey: "projects", Definition: nil},
	} {
		gen := &stubGenerator{cand: cand}
		e := NewEngine(gen, time.Second, nil)
		res := e.Suggest(context.Background(), Request{Instruction: "create projects"})
		assert.Equal(t, "projects", res.DefinitionKey)
		assert.Contains(t, res.Definition.Properties, "id")
	}
}

func TestSuggestExtendIgnoresGeneratorKey(t *testing.T) {
	gen := &stubGenerator{cand: &Candidate{
		DefinitionKey: "somewhere_else",
		Definition: &schema.EntityFragment{
			Properties: map[string]*schema.FieldSpec{"extra": {Type: "string"}},
		},
	}}
	e := NewEngine(gen, time.Second, nil)
	res := e.Suggest(context.Background(), Request{
		Instruction: "add extra",
		Mode:        ModeExtendEntity,
		Target:      "projects",
		Context:     schema.Context{"projects": {}},
	})
	assert.Equal(t, "projects", res.DefinitionKey)
	assert.Contains(t, res.Definition.Properties, "extra")
}

func TestSuggestClampsTemperatureForGenerator(t *testing.T) {
	gen := &stubGenerator{err: errors.New("skip")}
	e := NewEngine(gen, time.Second, nil)

	_ = e.Suggest(context.Background(), Request{Instruction: "x", Temperature: 7})
	assert.Equal(t, 1.0, gen.got.Temperature)

	_ = e.Suggest(context.Background(), Request{Instruction: "x", Temperature: -3})
	assert.Equal(t, 0.0, gen.got.Temperature)
}

func TestClampTemperature(t *testing.T) {
	assert.Equal(t, 0.0, ClampTemperature(-1))
	assert.Equal(t, 1.0, ClampTemperature(2))
	assert.Equal(t, 0.2, ClampTemperature(0.2))
}
