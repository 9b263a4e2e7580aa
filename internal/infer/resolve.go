package infer

import (
	"regexp"
	"strings"
)

// Mode — режим запроса.
type Mode string

const (
	ModeNewDefinition Mode = "new_definition"
	ModeExtendEntity  Mode = "extend_entity"
)

// DefaultVocabulary — стартовый словарь сущностных имён. Это конфигурация,
// а не зашитое знание предметной области: словарь подменяется каталогом
// (internal/reference) и перечитывается без рестарта.
var DefaultVocabulary = []string{"user", "role", "session", "project", "invoice", "order", "product"}

// "create widgets", "add a gadget", "define invoice" — существительное после глагола
var createNounRe = regexp.MustCompile(`(?i)\b(?:create|add|define|make|new)\s+(?:a\s+|an\s+|new\s+)?([a-z_]\w*)`)

// Resolution — результат подбора ключа сущности.
type Resolution struct {
	Key            string
	Title          string
	InjectIdentity bool
}

// Resolver подбирает ключ и заголовок целевой сущности.
type Resolver struct {
	vocab []string
}

func NewResolver(vocab []string) *Resolver {
	if len(vocab) == 0 {
		vocab = DefaultVocabulary
	}
	return &Resolver{vocab: vocab}
}

// Resolve:
//   - extend: ключ = target как есть (существование цели — забота вызывающего),
//     identity-поля не подсеваем;
//   - new: ключ выводим из текста — первое совпадение по словарю, затем
//     существительное после create/add/..., иначе "entity"; подсеваем id.
func (r *Resolver) Resolve(mode Mode, target, text string) Resolution {
	if mode == ModeExtendEntity && strings.TrimSpace(target) != "" {
		key := strings.TrimSpace(target)
		return Resolution{Key: key, Title: titleFor(key)}
	}

	low := strings.ToLower(text)
	key := "entity"
	matched := false
	for _, w := range r.vocab {
		if w = strings.ToLower(strings.TrimSpace(w)); w == "" {
			continue
		}
		if strings.Contains(low, w) {
			key = pluralize(w)
			matched = true
			break
		}
	}
	if !matched {
		if m := createNounRe.FindStringSubmatch(text); m != nil {
			key = pluralize(strings.ToLower(m[1]))
		}
	}
	return Resolution{Key: key, Title: titleFor(key), InjectIdentity: true}
}

// titleFor: единственное число ключа с заглавной первой буквой.
func titleFor(key string) string {
	s := singularize(key)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
