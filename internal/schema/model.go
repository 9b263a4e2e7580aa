package schema

// Закрытый набор примитивов для type у свойства.
var allowedTypes = map[string]struct{}{
	"string": {}, "number": {}, "integer": {}, "boolean": {}, "array": {}, "object": {},
}

// Для items массива: всё то же, кроме array (вложенные массивы не поддерживаем).
var allowedItemTypes = map[string]struct{}{
	"string": {}, "number": {}, "integer": {}, "boolean": {}, "object": {},
}

// FieldSpec описывает одно свойство сущности (подмножество JSON Schema draft-07
// плюс x-* атрибуты для ссылок между таблицами).
type FieldSpec struct {
	Type   string     `json:"type,omitempty"`   // string|number|integer|boolean|array|object
	Format string     `json:"format,omitempty"` // uuid | email | date-time | uri
	Enum   []string   `json:"enum,omitempty"`   // непустой, если задан
	Items  *FieldSpec `json:"items,omitempty"`  // обязателен при type=array

	// Ссылка на другую сущность (FK)
	Ref              string `json:"$ref,omitempty"` // "#/<table>/<column>"
	RefTable         string `json:"x-ref-table,omitempty"`
	RefColumn        string `json:"x-ref-column,omitempty"`
	RelationshipName string `json:"x-relationship,omitempty"`

	Description string `json:"description,omitempty"`
	UniqueItems *bool  `json:"uniqueItems,omitempty"` // имеет смысл только при type=array
}

// Clone — глубокая копия (nil-safe).
func (f *FieldSpec) Clone() *FieldSpec {
	if f == nil {
		return nil
	}
	out := *f
	out.Enum = append([]string(nil), f.Enum...)
	out.Items = f.Items.Clone()
	if f.UniqueItems != nil {
		v := *f.UniqueItems
		out.UniqueItems = &v
	}
	return &out
}

// EntityFragment — частичное или полное описание сущности.
// Структурные ключи (type/properties/required/primaryKey/additionalProperties)
// гарантированно присутствуют только после Normalize.
type EntityFragment struct {
	Type                 string                `json:"type"`
	Title                string                `json:"title,omitempty"`
	Properties           map[string]*FieldSpec `json:"properties"`
	Required             []string              `json:"required"`
	PrimaryKey           []string              `json:"primaryKey"`
	AdditionalProperties *bool                 `json:"additionalProperties"`
}

// Clone — глубокая копия (nil → пустой фрагмент).
func (e *EntityFragment) Clone() *EntityFragment {
	if e == nil {
		return &EntityFragment{}
	}
	out := &EntityFragment{
		Type:  e.Type,
		Title: e.Title,
	}
	if e.Properties != nil {
		out.Properties = make(map[string]*FieldSpec, len(e.Properties))
		for k, v := range e.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	out.Required = append([]string(nil), e.Required...)
	out.PrimaryKey = append([]string(nil), e.PrimaryKey...)
	if e.AdditionalProperties != nil {
		v := *e.AdditionalProperties
		out.AdditionalProperties = &v
	}
	return out
}

// Context — read-only снимок существующих сущностей: key -> фрагмент.
// Ядро его никогда не мутирует; персистентность — забота вызывающей стороны.
type Context map[string]*EntityFragment

// Clone — копия снимка, чтобы отдать его наружу без риска мутаций.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// Bool — указатель на literal (для AdditionalProperties и uniqueItems).
func Bool(v bool) *bool { return &v }
