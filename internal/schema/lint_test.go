package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestLintCleanFragment(t *testing.T) {
	frag := Normalize(&EntityFragment{
		Properties: map[string]*FieldSpec{
			"id":   {Type: "string", Format: "uuid"},
			"name": {Type: "string"},
		},
		Required:   []string{"id", "name"},
		PrimaryKey: []string{"id"},
	})
	assert.Empty(t, Lint("projects", frag))
}

func TestLintUnknownFields(t *testing.T) {
	frag := &EntityFragment{
		Properties: map[string]*FieldSpec{"name": {Type: "string"}},
		Required:   []string{"name", "ghost"},
		PrimaryKey: []string{"id"},
	}
	got := codes(Lint("projects", frag))
	assert.Contains(t, got, "required_unknown_field")
	assert.Contains(t, got, "primary_key_unknown_field")
}

func TestLintFieldIssues(t *testing.T) {
	frag := &EntityFragment{
		Properties: map[string]*FieldSpec{
			"tags":    {Type: "array"},
			"status":  {Type: "string", Enum: []string{}},
			"user_id": {Type: "string", RefTable: "users"}, // колонки нет
		},
	}
	got := codes(Lint("projects", frag))
	assert.Contains(t, got, "array_items_missing")
	assert.Contains(t, got, "enum_empty")
	assert.Contains(t, got, "ref_target_empty")
}

func TestLintContextPrefixesEntity(t *testing.T) {
	ctx := Context{
		"projects": {Required: []string{"ghost"}},
	}
	issues := LintContext(ctx)
	assert.Len(t, issues, 1)
	assert.Equal(t, "projects", issues[0].Entity)
}
