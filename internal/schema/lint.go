package schema

import (
	"fmt"
	"strings"
)

type Issue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint проверяет базовые противоречия в фрагменте. Нормализация такие вещи
// не чинит (required может честно указывать на ещё не добавленное поле в
// частичном extend-фрагменте), поэтому это отдельный, необязательный шаг —
// для сохранения финальных определений и для ручной диагностики.
func Lint(key string, e *EntityFragment) []Issue {
	var issues []Issue
	if e == nil {
		return issues
	}

	has := func(name string) bool {
		_, ok := e.Properties[name]
		return ok
	}

	for _, r := range e.Required {
		if !has(r) {
			issues = append(issues, Issue{
				Entity:  key,
				Field:   r,
				Code:    "required_unknown_field",
				Message: fmt.Sprintf("required lists %q, but properties has no such field", r),
			})
		}
	}
	for _, pk := range e.PrimaryKey {
		if !has(pk) {
			issues = append(issues, Issue{
				Entity:  key,
				Field:   pk,
				Code:    "primary_key_unknown_field",
				Message: fmt.Sprintf("primaryKey lists %q, but properties has no such field", pk),
			})
		}
	}

	for name, p := range e.Properties {
		if p == nil {
			continue
		}
		if p.Type == "array" && p.Items == nil {
			issues = append(issues, Issue{
				Entity:  key,
				Field:   name,
				Code:    "array_items_missing",
				Message: "array field has no items spec",
			})
		}
		if p.Enum != nil && len(p.Enum) == 0 {
			issues = append(issues, Issue{
				Entity:  key,
				Field:   name,
				Code:    "enum_empty",
				Message: "enum is present but empty",
			})
		}
		// ссылка без цели
		if (p.RefTable != "" || p.RefColumn != "" || p.Ref != "") &&
			(strings.TrimSpace(p.RefTable) == "" || strings.TrimSpace(p.RefColumn) == "") {
			issues = append(issues, Issue{
				Entity:  key,
				Field:   name,
				Code:    "ref_target_empty",
				Message: "reference field has empty x-ref-table or x-ref-column",
			})
		}
	}
	return issues
}

// LintContext — Lint по всем сущностям снимка.
func LintContext(ctx Context) []Issue {
	var issues []Issue
	for key, e := range ctx {
		issues = append(issues, Lint(key, e)...)
	}
	return issues
}
