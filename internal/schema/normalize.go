package schema

// Normalize приводит фрагмент к структурно валидному виду.
// Тотальна (никогда не падает, в т.ч. на nil) и идемпотентна:
// Normalize(Normalize(f)) == Normalize(f). Работает на защитной копии.
func Normalize(f *EntityFragment) *EntityFragment {
	out := f.Clone()

	out.Type = "object"
	if out.Properties == nil {
		out.Properties = map[string]*FieldSpec{}
	}
	if out.Required == nil {
		out.Required = []string{}
	}
	if out.PrimaryKey == nil {
		out.PrimaryKey = []string{}
	}
	// additionalProperties по умолчанию закрыт — никогда не «откроем» сами
	if out.AdditionalProperties == nil {
		out.AdditionalProperties = Bool(false)
	}

	for name, p := range out.Properties {
		if p == nil {
			p = &FieldSpec{}
			out.Properties[name] = p
		}
		normalizeField(p)
	}
	return out
}

func normalizeField(p *FieldSpec) {
	if _, ok := allowedTypes[p.Type]; !ok {
		p.Type = "string"
	}

	if p.Type == "array" {
		// items обязателен и должен быть скалярным/object
		if p.Items == nil {
			p.Items = &FieldSpec{Type: "string"}
		}
		if _, ok := allowedItemTypes[p.Items.Type]; !ok {
			p.Items.Type = "string"
		}
	} else {
		// uniqueItems вне массива структурно бессмысленен
		p.UniqueItems = nil
	}
}
