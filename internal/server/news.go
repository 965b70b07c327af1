package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"StockPulse/internal/model"
	"StockPulse/internal/news"
)

// countParam reads ?count= falling back to def and capping at max.
func countParam(c *gin.Context, def, max int) int {
	n, err := strconv.Atoi(c.Query("count"))
	if err != nil || n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}

func invalidCategory(c *gin.Context) {
	valid := make([]string, len(model.Categories))
	for i, cat := range model.Categories {
		valid[i] = string(cat)
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":           "Invalid category",
		"validCategories": valid,
	})
}

func (s *Server) newsList(c *gin.Context) {
	category := model.Category(c.DefaultQuery("category", string(model.CategoryMarket)))
	if !category.Valid() {
		invalidCategory(c)
		return
	}
	articles, err := s.deps.News.Generate(c.Request.Context(), category, countParam(c, news.DefaultCount, news.MaxCount))
	if err != nil {
		newsError(c, "Failed to generate news", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"articles":  articles,
		"category":  category,
		"total":     len(articles),
		"timestamp": s.timestamp(),
	})
}

func (s *Server) newsByCategory(c *gin.Context) {
	category := model.Category(c.Param("category"))
	if !category.Valid() {
		invalidCategory(c)
		return
	}
	articles, err := s.deps.News.Generate(c.Request.Context(), category, countParam(c, news.DefaultCategoryCount, news.MaxCategoryCount))
	if err != nil {
		newsError(c, "Failed to fetch category news", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"articles":  articles,
		"category":  category,
		"timestamp": s.timestamp(),
	})
}

func (s *Server) breakingNews(c *gin.Context) {
	articles, err := s.deps.News.Generate(c.Request.Context(), model.CategoryBreaking, news.BreakingCount)
	if err != nil {
		newsError(c, "Failed to fetch breaking news", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"articles":  articles,
		"type":      "breaking",
		"timestamp": s.timestamp(),
	})
}

func newsError(c *gin.Context, title string, err error) {
	log.Printf("[ERROR] %s: %v", title, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": title, "message": err.Error()})
}
