package infer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"shema/internal/schema"
)

// Request — вход ядра. Vocabulary опционален (пустой = DefaultVocabulary),
// Context — read-only снимок, ядро его не мутирует.
type Request struct {
	Instruction string
	Mode        Mode
	Target      string
	Context     schema.Context
	Temperature float64
	Vocabulary  []string
}

// Result — выход ядра: неизменяемый после возврата, без персистентной identity.
type Result struct {
	Mode          Mode                   `json:"mode"`
	DefinitionKey string                 `json:"definition_key"`
	Definition    *schema.EntityFragment `json:"definition"`
}

// Candidate — недоверенный ответ внешнего генератора. Принимается только при
// наличии обоих верхнеуровневых ключей и всё равно проходит Normalize/Merge
// наравне с детерминированным путём.
type Candidate struct {
	DefinitionKey string                 `json:"definition_key"`
	Definition    *schema.EntityFragment `json:"definition"`
}

// Generator — необязательный внешний помощник (LLM). Любая его ошибка не
// фатальна: детерминированный путь всегда доступен.
type Generator interface {
	Suggest(ctx context.Context, req Request) (*Candidate, error)
}

// Engine — конвейер resolve -> extract/candidate -> normalize -> merge.
// Чистое синхронное вычисление; единственная точка ожидания — вызов
// генератора, и он ограничен genTimeout.
type Engine struct {
	gen        Generator
	genTimeout time.Duration
	log        *zap.Logger
}

func NewEngine(gen Generator, genTimeout time.Duration, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{gen: gen, genTimeout: genTimeout, log: log}
}

// Suggest тотален: на любой вход возвращает пригодный Result, ошибок наружу нет.
func (e *Engine) Suggest(ctx context.Context, req Request) Result {
	if req.Mode != ModeExtendEntity {
		req.Mode = ModeNewDefinition
	}
	req.Temperature = ClampTemperature(req.Temperature)

	res := NewResolver(req.Vocabulary).Resolve(req.Mode, req.Target, req.Instruction)
	key := res.Key
	frag := e.deterministic(res, req.Instruction)

	if e.gen != nil {
		if cand := e.tryGenerator(ctx, req); cand != nil {
			frag = cand.Definition
			// в extend режиме ключ фиксирован target'ом — кандидату его не отдаём
			if req.Mode == ModeNewDefinition {
				key = strings.TrimSpace(cand.DefinitionKey)
			}
		}
	}

	if req.Mode == ModeExtendEntity {
		// отсутствующий target не ошибка: merge с пустым существующим
		// вырождается в новое определение под заданным ключом
		existing := req.Context[key]
		return Result{Mode: req.Mode, DefinitionKey: key, Definition: schema.Merge(existing, frag)}
	}
	return Result{Mode: req.Mode, DefinitionKey: key, Definition: schema.Normalize(frag)}
}

// tryGenerator зовёт внешний генератор под таймаутом. Один вызов, без ретраев;
// любой сбой (сеть, таймаут, неполный ответ) — молча на детерминированный путь.
func (e *Engine) tryGenerator(ctx context.Context, req Request) *Candidate {
	if e.genTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.genTimeout)
		defer cancel()
	}
	cand, err := e.gen.Suggest(ctx, req)
	if err != nil {
		e.log.Warn("generator failed, falling back", zap.Error(err))
		return nil
	}
	if cand == nil || cand.Definition == nil || strings.TrimSpace(cand.DefinitionKey) == "" {
		e.log.Warn("generator returned incomplete candidate, falling back")
		return nil
	}
	return cand
}

// deterministic строит фрагмент из текста инструкции.
func (e *Engine) deterministic(res Resolution, text string) *schema.EntityFragment {
	frag := &schema.EntityFragment{
		Title:      res.Title,
		Properties: map[string]*schema.FieldSpec{},
	}
	if res.InjectIdentity {
		frag.Properties["id"] = &schema.FieldSpec{Type: "string", Format: "uuid", Description: "Primary key"}
		frag.Required = []string{"id"}
		frag.PrimaryKey = []string{"id"}
	}
	for name, spec := range Extract(text) {
		if _, ok := frag.Properties[name]; ok {
			continue
		}
		frag.Properties[name] = spec
	}
	return frag
}

// ClampTemperature ограничивает температуру диапазоном [0,1].
func ClampTemperature(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
