package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s Server) registeRoute() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	s.engine.GET("/", s.status)
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/run", s.run)
	s.engine.POST("/run", s.run)
	s.engine.GET("/tables/:key", s.table)
}
