package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shema/internal/infer"
	"shema/internal/pg"
	"shema/internal/schema"
)

// Deps — явные зависимости хендлеров; собираются один раз в main.
type Deps struct {
	Storage            *Storage
	Engine             *infer.Engine
	DB                 *sql.DB // nil = без персистентности
	Log                *zap.Logger
	DefaultTemperature float64
}

type suggestReq struct {
	Instruction  string                            `json:"instruction"`
	Mode         string                            `json:"mode"` // new_definition | extend_entity
	SchemaCtx    map[string]*schema.EntityFragment `json:"schema_ctx"`
	TargetEntity string                            `json:"target_entity"`
	Temperature  *float64                          `json:"temperature"`
}

// POST /ai/suggest
func SuggestHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		mode := infer.ModeNewDefinition
		if strings.EqualFold(strings.TrimSpace(req.Mode), string(infer.ModeExtendEntity)) {
			mode = infer.ModeExtendEntity
		}

		target := strings.TrimSpace(req.TargetEntity)
		if mode == infer.ModeExtendEntity && target == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []FieldError{ferr(ErrRequired, "target_entity", "target_entity is required in extend_entity mode")},
			})
			return
		}

		// контекст: из запроса или серверный снимок
		sctx := schema.Context(req.SchemaCtx)
		if sctx == nil {
			sctx = d.Storage.Snapshot()
			// для серверного контекста разрешаем регистронезависимый target
			if mode == infer.ModeExtendEntity {
				if full, ok := d.Storage.ResolveKey(target); ok {
					target = full
				}
			}
		}

		temp := d.DefaultTemperature
		if req.Temperature != nil {
			temp = *req.Temperature
		}

		res := d.Engine.Suggest(c.Request.Context(), infer.Request{
			Instruction: req.Instruction,
			Mode:        mode,
			Target:      target,
			Context:     sctx,
			Temperature: temp,
			Vocabulary:  d.Storage.Vocabulary(),
		})

		c.JSON(http.StatusOK, gin.H{
			"suggestion_id":  d.Storage.NewSuggestionID(),
			"mode":           res.Mode,
			"definition_key": res.DefinitionKey,
			"definition":     res.Definition,
		})
	}
}

// PUT /api/definitions/:entity — принять определение в серверный контекст.
// Перед записью нормализуем и гоним через линтер; блокирующие issues → 400.
func PutDefinitionHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("entity"))
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []FieldError{ferr(ErrRequired, "entity", "entity key is required")},
			})
			return
		}

		var frag schema.EntityFragment
		if err := c.ShouldBindJSON(&frag); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		norm := schema.Normalize(&frag)
		if issues := schema.Lint(key, norm); len(issues) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "definition has blocking issues",
				"issues": issues,
			})
			return
		}

		d.Storage.Put(key, norm)
		if d.DB != nil {
			if err := pg.SaveDefinition(c.Request.Context(), d.DB, key, norm); err != nil {
				d.Log.Error("persist definition failed", zap.String("key", key), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "Definition accepted in memory, persistence failed"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"key": key, "definition": norm})
	}
}

// GET /api/lint — гигиена всего серверного контекста.
func LintHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		issues := schema.LintContext(d.Storage.Snapshot())
		if issues == nil {
			issues = []schema.Issue{}
		}
		c.JSON(http.StatusOK, gin.H{"issues": issues})
	}
}
