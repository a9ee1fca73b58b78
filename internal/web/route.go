package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

func (s *Service) setupRoutes() {
	s.router.GET("/", s.pages.index)
	s.router.POST("/analyze", s.pages.analyze)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/analyze", s.api.Analyze)
		v1.POST("/chart", s.api.Chart)
		v1.POST("/export", s.api.Export)
		v1.GET("/kinds", s.api.Kinds)
		v1.GET("/version", s.api.Version)
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.router.NoRoute(func(c *gin.Context) {
		transport.NotFound(c, "not found: "+c.Request.URL.Path)
	})
}
