package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := orNop(cfg.Logger).Named("http")

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())
	router.Use(securityHeaders())

	health := NewHealthController(cfg.Store, cfg.Version)
	lists := NewListsController(cfg.Store, log)
	table := NewTableController(cfg.Store, cfg.Store, cfg.Store, log)
	titles := NewTitlesController(cfg.Store, log)
	authors := NewAuthorsController(cfg.Store, log)
	comments := NewCommentsController(cfg.Store, log)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Lists
	api.GET("/lists", lists.GetLists)
	api.POST("/lists", lists.CreateList)
	api.GET("/lists/:id", lists.GetList)
	api.PUT("/lists/:id", lists.UpdateList)
	api.DELETE("/lists/:id", lists.DeleteList)
	api.GET("/lists/:id/table", table.GetTable)
	api.PATCH("/lists/:id/table", table.PatchTable)

	// Titles
	api.GET("/titles", titles.GetTitles)
	api.POST("/titles", titles.CreateTitle)
	api.GET("/titles/:id", titles.GetTitle)
	api.PUT("/titles/:id", titles.UpdateTitle)
	api.DELETE("/titles/:id", titles.DeleteTitle)

	// Authors
	api.GET("/authors", authors.GetAuthors)
	api.POST("/authors", authors.CreateAuthor)
	api.GET("/authors/:id", authors.GetAuthor)
	api.PUT("/authors/:id", authors.UpdateAuthor)
	api.DELETE("/authors/:id", authors.DeleteAuthor)

	// Comments
	api.POST("/comments", comments.CreateComment)
	api.GET("/comments/:id", comments.GetComment)
	api.PUT("/comments/:id", comments.UpdateComment)
	api.DELETE("/comments/:id", comments.DeleteComment)

	// Maintenance
	if cfg.TaskQueue != nil || cfg.Sweeper != nil {
		maintenance := NewMaintenanceController(cfg.TaskQueue, cfg.Sweeper, log)
		api.POST("/maintenance/orphans", maintenance.SweepOrphans)
	}

	router.NoRoute(func(c *gin.Context) {
		respondNotFound(c, "route")
	})

	return router
}
