package generator

import (
	"sort"

	"shema/internal/schema"
)

// Пределы проекции контекста для промпта: ограничиваем размер payload,
// полные спеки полей наружу не уходят никогда.
const (
	maxProjectedEntities   = 50
	maxProjectedProperties = 60
)

type ProjectedEntity struct {
	Key        string   `json:"key"`
	Properties []string `json:"properties"`
	PrimaryKey []string `json:"primaryKey,omitempty"`
}

// Project строит усечённую проекцию снимка схемы: ключи сущностей, имена
// свойств и primaryKey. Порядок детерминированный (сортировка по ключу).
func Project(ctx schema.Context) []ProjectedEntity {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxProjectedEntities {
		keys = keys[:maxProjectedEntities]
	}

	out := make([]ProjectedEntity, 0, len(keys))
	for _, k := range keys {
		e := ctx[k]
		p := ProjectedEntity{Key: k}
		if e != nil {
			names := make([]string, 0, len(e.Properties))
			for name := range e.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
			if len(names) > maxProjectedProperties {
				names = names[:maxProjectedProperties]
			}
			p.Properties = names
			p.PrimaryKey = append([]string(nil), e.PrimaryKey...)
		}
		out = append(out, p)
	}
	return out
}
