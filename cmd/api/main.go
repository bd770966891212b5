package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dualwell-tea/internal/api/handlers"
	"dualwell-tea/internal/api/middleware"
	"dualwell-tea/internal/history"
	"dualwell-tea/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables
	godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and scenario path so misplaced deployments are
	// easy to spot.
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		scenarioDir := filepath.Join(wd, "examples", "scenarios")
		if info, err := os.Stat(scenarioDir); err == nil && info.IsDir() {
			log.Printf("Scenario directory found: %s", scenarioDir)
		} else {
			log.Printf("Scenario directory not found at: %s (error: %v)", scenarioDir, err)
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Shared state and instrumentation
	store := history.NewStore()
	m := metrics.New()

	// Initialize handlers
	evaluateHandler := handlers.NewEvaluateHandler(store, m)
	sweepHandler := handlers.NewSweepHandler(m)
	costModelHandler := handlers.NewCostModelHandler()
	scenarioHandler := handlers.NewScenarioHandler()
	historyHandler := handlers.NewHistoryHandler(store, m)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/evaluate", evaluateHandler.Evaluate)
		api.POST("/evaluate/compare", evaluateHandler.Compare)
		api.POST("/sweep", sweepHandler.RunSweep)

		api.GET("/costmodels", costModelHandler.ListCostModels)
		api.GET("/scenarios", scenarioHandler.ListScenarios)

		api.GET("/history", historyHandler.List)
		api.GET("/history/export", historyHandler.Export)
		api.GET("/history/:id", historyHandler.Get)
		api.DELETE("/history", historyHandler.Clear)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
