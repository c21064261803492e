package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestId())
	router.Use(Logger())
	router.Use(gin.Recovery())
	pprof.Register(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ok",
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := router.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/usage", s.handleUsage)

	// Front-end assets; everything unknown outside /api falls back to the
	// entry document.
	router.StaticFile("/script.js", filepath.Join(s.conf.StaticDir, "script.js"))
	router.StaticFile("/style.css", filepath.Join(s.conf.StaticDir, "style.css"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(filepath.Join(s.conf.StaticDir, "index.html"))
	})

	return router
}
