package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

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
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
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

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		withRecipes := planCmd.Bool("recipes", false, "Also generate a recipe for every dish")
		publishPost := planCmd.Bool("publish", false, "Publish the menu to the CMS")
		planCmd.Parse(os.Args[2:])

		request := "Menu familial équilibré pour la semaine"
		if planCmd.NArg() > 0 {
			request = planCmd.Arg(0)
		}

		if err := application.RunPlanCommand(ctx, request, *withRecipes, *publishPost); err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Println("Usage: ai-menu-planner import <url>")
			os.Exit(1)
		}
		if err := application.RunImportCommand(ctx, os.Args[2]); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: ai-menu-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan [-recipes] [-publish] \"request\"   Generate the weekly menu")
	fmt.Println("  import <url>                           Import a recipe from a web page")
	fmt.Println("  metrics-cleanup -days N                Remove old metric records")
}
