package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   s.timestamp(),
		"environment": s.cfg.Server.Mode,
		"version":     Version,
		"service":     "StockPulse Pro API",
		"liveData":    s.deps.Market.Live(),
		"model":       s.deps.Analyzer.Model(),
	})
}
