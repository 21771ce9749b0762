package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaRequest struct {
	Table string `json:"table"`
}

// POST /api/meta {"table": "..."}
// GET  /api/meta/:table
func MetaFieldsHandler(srv *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := strings.TrimSpace(c.Param("table"))
		if table == "" {
			var req metaRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
			table = strings.TrimSpace(req.Table)
		}

		fields, err := srv.Registry.PublicFields(table)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown table"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fields": srv.Titles.Apply(table, fields)})
	}
}

// GET /api/meta
func MetaListHandler(srv *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"loaded": srv.Registry.Loaded(),
			"tables": srv.Registry.Keys(),
		})
	}
}
