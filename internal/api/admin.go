package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shema/internal/reference"
)

type reloadReq struct {
	VocabDir string `json:"vocab_dir"` // директория со словарями (*.yaml)
}

// POST /admin/reload — перечитать словарь резолвера и атомарно подменить.
func AdminReloadHandler(d Deps, defaultDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reloadReq
		if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		dir := strings.TrimSpace(req.VocabDir)
		if dir == "" {
			dir = defaultDir
		}

		vocabs, err := reference.LoadVocabularies(dir)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vocabulary load error", "details": err.Error()})
			return
		}
		nouns := reference.Nouns(vocabs)

		d.Storage.ReplaceVocabulary(nouns)
		d.Log.Info("vocabulary reloaded", zap.String("dir", dir), zap.Int("nouns", len(nouns)))

		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"vocabDir": dir,
			"nouns":    len(nouns),
		})
	}
}
