package routes

import (
	"embed"
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aaliyatanseeq-hub/events/internal/container"
	"github.com/aaliyatanseeq-hub/events/internal/handlers"
	"github.com/aaliyatanseeq-hub/events/internal/middleware"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(ct *container.Container) *gin.Engine {
	if ct.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(ct.Logger))
	r.Use(middleware.ErrorHandler(ct.Logger))
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	// Console pages and actions
	r.GET("/", handlers.ShowConsole(ct.Console))
	r.POST("/discover/events", handlers.DiscoverEvents(ct.Console))
	r.POST("/discover/attendees", handlers.DiscoverAttendees(ct.Console))
	r.POST("/attendees/cards/:index/toggle", handlers.ToggleCard(ct.Console))
	r.POST("/phase/:name", handlers.SetPhase(ct.Console))

	// Client-side file downloads
	r.GET("/export/:kind/:format", handlers.ExportRecords(ct.Console))

	// Operational endpoints
	r.GET("/api/health", handlers.Health())
	r.GET("/api/state", handlers.State(ct.Console))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(ct.Registry, promhttp.HandlerOpts{})))

	return r
}
