// api/router.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter собирает маршруты; отдельно от RunServer ради httptest.
func NewRouter(d Deps, vocabDir string) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/ai/suggest", SuggestHandler(d))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/meta", MetaListHandler(d))
		apiGroup.GET("/meta/:entity", MetaEntityHandler(d))
		apiGroup.PUT("/definitions/:entity", PutDefinitionHandler(d))
		apiGroup.GET("/lint", LintHandler(d))
	}

	r.POST("/admin/reload", AdminReloadHandler(d, vocabDir))

	return r
}

func RunServer(addr string, d Deps, vocabDir string) {
	_ = NewRouter(d, vocabDir).Run(addr)
}
