package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"shema/internal/infer"
)

// Config — явная конфигурация генератора; собирается один раз на старте
// процесса и передаётся сюда, никакого чтения env изнутри.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string  // прокси/тесты; пусто = дефолтный endpoint
	RPS     float64 // лимит вызовов в секунду; 0 = без лимита
}

// Gemini — внешний генератор определений поверх google.golang.org/genai.
// Его ответ недоверенный: ядро всё равно прогонит фрагмент через Normalize/Merge.
type Gemini struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewGemini(ctx context.Context, cfg Config, log *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("generator: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("generator: model is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &Gemini{
		client:  client,
		model:   strings.TrimSpace(cfg.Model),
		limiter: limiter,
		log:     log,
	}, nil
}

// Suggest делает один вызов модели. Ретраев нет: ошибку возвращаем как есть,
// решение об отказе принимает ядро (fallback на детерминированный путь).
func (g *Gemini) Suggest(ctx context.Context, req infer.Request) (*infer.Candidate, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}
	temp := float32(infer.ClampTemperature(req.Temperature))
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			Temperature:      &temp,
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, err
	}

	var cand infer.Candidate
	if err := json.Unmarshal([]byte(resp.Text()), &cand); err != nil {
		return nil, fmt.Errorf("generator: parse model json: %w", err)
	}
	// оба верхнеуровневых ключа обязательны — иных проверок «формы» не делаем,
	// остальное чинит нормализация
	if strings.TrimSpace(cand.DefinitionKey) == "" || cand.Definition == nil {
		return nil, errors.New("generator: candidate missing definition_key or definition")
	}
	g.log.Debug("generator candidate accepted",
		zap.String("definition_key", cand.DefinitionKey),
		zap.Int("properties", len(cand.Definition.Properties)))
	return &cand, nil
}

const systemPrompt = `You write JSON Schema (draft-07) entity definitions for database-backed CRUD apps.
Return ONLY a JSON object of this shape, no prose and no code fences:
{
  "definition_key": "snake_or_plural_identifier",
  "definition": {
    "type": "object",
    "title": "Human Title",
    "properties": { ... },
    "required": [ ... ],
    "primaryKey": [ ... ],
    "additionalProperties": false
  }
}
Rules:
- Allowed property types: string, number, integer, boolean, array, object.
- Use formats where obvious (uuid, email, date-time, uri).
- Always include a sensible primaryKey (prefer "id" with format "uuid") and "required".
- If enums are specified in the instruction, include them.
- In extend mode add fields to the target entity, do not repeat unchanged ones.`

func buildPrompt(req infer.Request) (string, error) {
	proj, err := json.Marshal(Project(req.Context))
	if err != nil {
		return "", fmt.Errorf("generator: marshal context projection: %w", err)
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nMode: ")
	b.WriteString(string(req.Mode))
	if strings.TrimSpace(req.Target) != "" {
		b.WriteString("\nTarget entity: ")
		b.WriteString(strings.TrimSpace(req.Target))
	}
	b.WriteString("\nExisting entities (keys, property names, primary keys only):\n")
	b.Write(proj)
	b.WriteString("\n\nInstruction:\n")
	b.WriteString(strings.TrimSpace(req.Instruction))
	return b.String(), nil
}
