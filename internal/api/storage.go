package api

import (
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"shema/internal/schema"
)

// Storage — серверный снимок схемы и словарь резолвера.
// Ядро работает только с копиями (Snapshot), сам Storage мутируют
// только хендлеры под локом.
type Storage struct {
	mu      sync.RWMutex
	Defs    schema.Context
	vocab   []string
	entropy io.Reader
}

func NewStorage(defs schema.Context, vocab []string) *Storage {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	if defs == nil {
		defs = make(schema.Context)
	}
	return &Storage{
		Defs:    defs,
		vocab:   vocab,
		entropy: ulid.Monotonic(src, 0),
	}
}

// NewSuggestionID — ULID под локом (monotonic entropy не потокобезопасен).
func (s *Storage) NewSuggestionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Snapshot — копия снимка схемы: наружу не отдаём ничего мутабельного.
func (s *Storage) Snapshot() schema.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Defs.Clone()
}

// Get возвращает копию одного определения.
func (s *Storage) Get(key string) (*schema.EntityFragment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.Defs[key]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Put кладёт нормализованное определение.
func (s *Storage) Put(key string, def *schema.EntityFragment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Defs[key] = def.Clone()
}

// ResolveKey ищет ключ сущности: сначала точное совпадение, затем
// регистронезависимое (только если оно единственное).
func (s *Storage) ResolveKey(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.Defs[name]; ok {
		return name, true
	}
	nl := strings.ToLower(name)
	var found string
	for key := range s.Defs {
		if strings.ToLower(key) == nl {
			if found != "" { // неуникально
				return "", false
			}
			found = key
		}
	}
	if found != "" {
		return found, true
	}
	return "", false
}

// Vocabulary — копия текущего словаря.
func (s *Storage) Vocabulary() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.vocab...)
}

// ReplaceVocabulary — атомарная замена словаря (admin reload).
func (s *Storage) ReplaceVocabulary(vocab []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocab = append([]string(nil), vocab...)
}
