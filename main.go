package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"gofill/adapters/interp"
	"gofill/app"
	"gofill/internal/config"
	"gofill/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)

	// Wire the fill engine to the gonum interpolation adapter
	interpolator := interp.NewGonumInterpolator()
	fillService := app.NewFillService(interpolator, appConfig.Fill.MaxConcurrent)

	// Initialize web server
	server := ui.NewServer(fillService)
	server.Initialize()

	// Preload data-file columns when configured
	if appConfig.Data.File != "" {
		log.Printf("Using data source: %s", appConfig.Data.File)
		if err := server.LoadColumns(appConfig.Data.File); err != nil {
			log.Fatalf("Failed to load data file: %v", err)
		}
	} else {
		log.Printf("No data file configured; fill requests must send values inline")
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("🚀 Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("❌ pprof server failed: %v", err)
			}
		}()
	}

	// Start the server
	log.Printf("🚀 Starting gofill server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
