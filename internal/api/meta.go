package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaEntityListItem struct {
	Key   string `json:"key"`
	Title string `json:"title,omitempty"`
}

// GET /api/meta
func MetaListHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := d.Storage.Snapshot()
		out := make([]metaEntityListItem, 0, len(snap))
		for key, e := range snap {
			item := metaEntityListItem{Key: key}
			if e != nil {
				item.Title = e.Title
			}
			out = append(out, item)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/meta/:entity
func MetaEntityHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := d.Storage.ResolveKey(c.Param("entity"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		def, _ := d.Storage.Get(key)
		c.JSON(http.StatusOK, gin.H{"key": key, "definition": def})
	}
}
