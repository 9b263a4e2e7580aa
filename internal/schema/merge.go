package schema

import "strings"

// Merge вливает incoming в existing (режим extend).
//
// Правила:
//   - properties: объединение, при коллизии побеждает incoming (extend-запрос
//     считаем корректирующим — это осознанный last-write-wins, не потеря данных);
//   - required / primaryKey: объединение с дедупликацией по первому вхождению,
//     пустые элементы выбрасываем;
//   - additionalProperties: значение incoming берём только если оно было задано
//     явно (до нормализации), иначе сохраняем existing;
//   - title: existing сохраняется, если непустой, иначе берём incoming.
//
// incoming нормализуется внутри (кроме additionalProperties — его тристейт нужен
// для правила выше), результат прогоняется через Normalize ещё раз: даже если
// existing был неканоничен, наружу уходит валидный фрагмент.
func Merge(existing, incoming *EntityFragment) *EntityFragment {
	inc := Normalize(incoming)
	if incoming == nil || incoming.AdditionalProperties == nil {
		inc.AdditionalProperties = nil // «не задано»
	}

	out := Normalize(existing)

	for k, v := range inc.Properties {
		out.Properties[k] = v.Clone()
	}
	out.Required = unionKeepOrder(out.Required, inc.Required)
	out.PrimaryKey = unionKeepOrder(out.PrimaryKey, inc.PrimaryKey)

	if inc.AdditionalProperties != nil {
		out.AdditionalProperties = Bool(*inc.AdditionalProperties)
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = inc.Title
	}

	return Normalize(out)
}

// unionKeepOrder — объединение списков: порядок по первому вхождению,
// дубликаты и пустые строки отбрасываются.
func unionKeepOrder(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, src := range [][]string{a, b} {
		for _, v := range src {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
