package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-menu-planner/internal/app"
	"ai-menu-planner/internal/config"
	"ai-menu-planner/internal/database"
	"ai-menu-planner/internal/importer"
	"ai-menu-planner/internal/llm"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/metrics"
	"ai-menu-planner/internal/publish"
	"ai-menu-planner/internal/recipes"
	"ai-menu-planner/internal/research"
	"ai-menu-planner/internal/storage"
	"ai-menu-planner/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	recipeModel := llm.NewGroqClient(cfg, llm.ModelRecipe, 0.3)
	extractorModel := llm.NewGroqClient(cfg, llm.ModelExtractor, 0.1)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	metricsStore := metrics.NewStore(db.SQL)

	artifactStore, err := storage.NewArtifactStore(cfg.ArtifactsPath)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	var publisher publish.Client
	if cfg.CMSURL != "" && cfg.CMSAdminKey != "" {
		publisher = publish.NewClient(cfg)
	}

	recipeGenerator := recipes.NewGenerator(recipeModel, artifactStore, metricsStore)
	menuService := menu.NewService(geminiClient, recipeGenerator)
	recipeImporter := importer.NewImporter(research.NewFetcher(), extractorModel, artifactStore, publisher)

	application := app.NewApp(menuService, recipeImporter, publisher, metricsStore, cfg)

	bot, err := telegram.NewBot(cfg, application, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
