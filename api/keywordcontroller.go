package api

import (
	"net/http"

	"contentpilot/keywords"

	"github.com/gin-gonic/gin"
)

// KeywordProcessor turns a niche and its keywords into a report.
type KeywordProcessor func(niche string, kws []string) keywords.Report

// ProcessKeywordsRequest is the body of POST /keywords/process.
type ProcessKeywordsRequest struct {
	Niche    string   `json:"niche" binding:"required"`
	Keywords []string `json:"keywords" binding:"required"`
}

// RegisterKeywordRoutes registers keyword bookkeeping endpoints.
func RegisterKeywordRoutes(r *gin.Engine, process KeywordProcessor) {
	r.POST("/keywords/process", func(c *gin.Context) {
		var req ProcessKeywordsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, process(req.Niche, req.Keywords))
	})
}
