package api

import (
	"net/http"

	"contentpilot/logging"

	"github.com/gin-gonic/gin"
)

type SuggestKeywordsRequest struct {
	Products []string `json:"products" binding:"required"`
	Posts    []string `json:"posts" binding:"required"`
}

type DetailedBlogRequest struct {
	Keyword string         `json:"keyword" binding:"required"`
	Context map[string]any `json:"context"`
}

// PromptRequest is shared by the free-form prompt endpoints.
type PromptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type KeywordRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}

type aiController struct {
	content ContentGenerator
}

// RegisterAIRoutes registers the content generation endpoints.
func RegisterAIRoutes(r *gin.Engine, content ContentGenerator) {
	ctl := &aiController{content: content}
	g := r.Group("/ai")
	g.POST("/suggest-keywords", ctl.handleSuggestKeywords)
	g.POST("/generate-detailed-blog", ctl.handleDetailedBlog)
	g.POST("/generate", ctl.handleGenerate)
	g.POST("/generate-blog", ctl.handleGenerateBlog)
	g.POST("/keyword-plan", ctl.handleKeywordPlan)
	g.POST("/outline", ctl.handleOutline)
	g.POST("/seo-meta", ctl.handleSEOMeta)
}

func (ctl *aiController) handleSuggestKeywords(c *gin.Context) {
	var req SuggestKeywordsRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.SuggestKeywords(detached(c), req.Products, req.Posts)
	if err != nil {
		fail(c, "keyword suggestion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": out})
}

func (ctl *aiController) handleDetailedBlog(c *gin.Context) {
	var req DetailedBlogRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.GenerateDetailedBlog(detached(c), req.Keyword, req.Context)
	if err != nil {
		fail(c, "detailed blog generation", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *aiController) handleGenerate(c *gin.Context) {
	var req PromptRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.GenerateContent(detached(c), req.Prompt)
	if err != nil {
		fail(c, "content generation", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *aiController) handleGenerateBlog(c *gin.Context) {
	var req PromptRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.GenerateBlogWithImage(detached(c), req.Prompt)
	if err != nil {
		fail(c, "blog generation", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// handleKeywordPlan answers with the HTML fragment as a JSON string.
func (ctl *aiController) handleKeywordPlan(c *gin.Context) {
	var req PromptRequest
	if !bind(c, &req) {
		return
	}
	html, err := ctl.content.GenerateKeywordPlan(detached(c), req.Prompt)
	if err != nil {
		fail(c, "keyword plan generation", err)
		return
	}
	c.JSON(http.StatusOK, html)
}

func (ctl *aiController) handleOutline(c *gin.Context) {
	var req KeywordRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.GenerateOutline(detached(c), req.Keyword)
	if err != nil {
		fail(c, "outline generation", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *aiController) handleSEOMeta(c *gin.Context) {
	var req KeywordRequest
	if !bind(c, &req) {
		return
	}
	out, err := ctl.content.GenerateSEOMeta(detached(c), req.Keyword)
	if err != nil {
		fail(c, "seo meta generation", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func fail(c *gin.Context, operation string, err error) {
	logging.Errorf("%s failed: %v", operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": operation + " failed: " + err.Error()})
}
