package infer

import (
	"regexp"
	"strings"

	"shema/internal/schema"
)

var (
	// "status enum: planned, active|done"
	enumRe = regexp.MustCompile(`(?i)\b([a-z_]\w*)\s+enum:\s*([\w-]+(?:\s*[,|]\s*[\w-]+)*)`)
	// "roles: user, admin, manager" — минимум два алфавитных токена
	listRe = regexp.MustCompile(`(?i)\b([a-z_]\w*)\s*:\s*([a-z]+(?:\s*[,|]\s*[a-z]+)+)`)
	// "FK: user_id -> users.id" (стрелка ASCII или →)
	fkRe = regexp.MustCompile(`(?i)\bfk:\s*([a-z_]\w*)\s*(?:->|→)\s*([a-z_]\w*)\.([a-z_]\w*)`)
	// "created_at", "deleted_at" — таймстемпы по суффиксу
	tsRe = regexp.MustCompile(`(?i)\b([a-z]\w*_at)\b`)
	// слово email где угодно
	emailRe = regexp.MustCompile(`(?i)\bemail\b`)
	// "age (integer)" — явный тип в скобках
	typedRe = regexp.MustCompile(`(?i)\b([a-z_]\w*)\s*\(\s*(string|number|integer|boolean)\s*\)`)
)

// Extract сканирует текст инструкции и возвращает имя поля -> FieldSpec.
// Тотальна: на любом тексте завершается без ошибки, нераспознанные куски
// просто не дают полей.
//
// Пассы идут в порядке убывающей специфичности (enum и FK — сильный сигнал,
// голый тип в скобках — слабый); поле, заполненное ранним пассом, поздние
// не перетирают.
func Extract(text string) map[string]*schema.FieldSpec {
	props := map[string]*schema.FieldSpec{}

	// 1) enum
	for _, m := range enumRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		values := splitValues(m[2])
		if len(values) == 0 {
			continue
		}
		if _, ok := props[name]; ok {
			continue
		}
		props[name] = &schema.FieldSpec{Type: "string", Enum: values}
	}

	// 2) список значений -> array[enum]. Сегментом считаем текст от начала
	// совпадения до конца строки: если в нём есть слово "enum", это
	// enum-объявление (его уже разобрал пасс 1), а не список.
	for _, idx := range listRe.FindAllStringSubmatchIndex(text, -1) {
		segEnd := len(text)
		if nl := strings.IndexByte(text[idx[0]:], '\n'); nl >= 0 {
			segEnd = idx[0] + nl
		}
		if strings.Contains(strings.ToLower(text[idx[0]:segEnd]), "enum") {
			continue
		}
		name := strings.ToLower(text[idx[2]:idx[3]])
		values := splitValues(text[idx[4]:idx[5]])
		if len(values) < 2 {
			continue
		}
		if _, ok := props[name]; ok {
			continue
		}
		props[name] = &schema.FieldSpec{
			Type:  "array",
			Items: &schema.FieldSpec{Type: "string", Enum: values},
		}
	}

	// 3) подсказки формата: email и *_at
	if emailRe.MatchString(text) {
		if _, ok := props["email"]; !ok {
			props["email"] = &schema.FieldSpec{Type: "string", Format: "email"}
		}
	}
	for _, m := range tsRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if _, ok := props[name]; ok {
			continue
		}
		props[name] = &schema.FieldSpec{Type: "string", Format: "date-time"}
	}

	// 4) внешние ключи
	for _, m := range fkRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		table := strings.ToLower(m[2])
		column := strings.ToLower(m[3])
		if _, ok := props[name]; ok {
			continue
		}
		props[name] = &schema.FieldSpec{
			Type:             "string",
			Format:           "uuid",
			Ref:              "#/" + table + "/" + column,
			RefTable:         table,
			RefColumn:        column,
			RelationshipName: singularize(table),
		}
	}

	// 5) явный тип в скобках — никогда не переопределяет
	for _, m := range typedRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if _, ok := props[name]; ok {
			continue
		}
		props[name] = &schema.FieldSpec{Type: strings.ToLower(m[2])}
	}

	return props
}

// splitValues режет список по запятой/пайпу, триммит, выбрасывает пустые.
func splitValues(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// singularize: users -> user; достаточно для имён таблиц, инфлектор не тянем.
func singularize(s string) string {
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}

// pluralize: project -> projects; слово на -s остаётся как есть.
func pluralize(s string) string {
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}
