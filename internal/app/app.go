package app

import (
	"context"
	"fmt"
	"log"

	"ai-menu-planner/internal/config"
	"ai-menu-planner/internal/importer"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/metrics"
	"ai-menu-planner/internal/publish"
	"ai-menu-planner/internal/recipes"
	"ai-menu-planner/internal/shared"
)

// App holds the application's dependencies.
type App struct {
	menuService    *menu.Service
	recipeImporter *importer.Importer
	publisher      publish.Client
	metricsStore   *metrics.Store
	cfg            *config.Config
}

// NewApp creates and initializes a new App instance. publisher may be nil
// when CMS publishing is not configured.
func NewApp(
	menuService *menu.Service,
	recipeImporter *importer.Importer,
	publisher publish.Client,
	metricsStore *metrics.Store,
	cfg *config.Config,
) *App {
	return &App{
		menuService:    menuService,
		recipeImporter: recipeImporter,
		publisher:      publisher,
		metricsStore:   metricsStore,
		cfg:            cfg,
	}
}

// GenerateMenu generates a weekly menu plan for the request.
func (a *App) GenerateMenu(ctx context.Context, request string) (*menu.WeeklyMenuPlan, error) {
	plan, meta, err := a.menuService.GeneratePlan(ctx, request)
	a.recordMeta(meta)
	return plan, err
}

// GenerateMenuWithRecipes generates a plan and the recipe artifact for every
// dish in it, returning the plan and the slugs of the recipes that succeeded.
func (a *App) GenerateMenuWithRecipes(ctx context.Context, request string) (*menu.WeeklyMenuPlan, []string, error) {
	plan, processed, meta, err := a.menuService.GenerateWithRecipes(ctx, request)
	a.recordMeta(meta)
	return plan, processed, err
}

// ImportRecipe imports a recipe from a web page into the artifact store.
func (a *App) ImportRecipe(ctx context.Context, url string) (*recipes.Recipe, error) {
	return a.recipeImporter.ImportURL(ctx, url)
}

// PublishMenu posts the rendered plan to the CMS when publishing is configured.
func (a *App) PublishMenu(plan *menu.WeeklyMenuPlan) (*publish.Post, error) {
	if a.publisher == nil {
		return nil, fmt.Errorf("publishing is not configured")
	}
	title := fmt.Sprintf("Menu de la semaine du %s", plan.WeekStartDate)
	return a.publisher.CreatePost(title, publish.FormatMenuHTML(plan), true)
}

// RunPlanCommand generates a plan (optionally with recipes) and prints it.
func (a *App) RunPlanCommand(ctx context.Context, request string, withRecipes, publishPost bool) error {
	fmt.Printf("Generating weekly menu for: \"%s\"...\n", request)

	var (
		plan      *menu.WeeklyMenuPlan
		processed []string
		err       error
	)
	if withRecipes {
		plan, processed, err = a.GenerateMenuWithRecipes(ctx, request)
	} else {
		plan, err = a.GenerateMenu(ctx, request)
	}
	if err != nil {
		return fmt.Errorf("failed to generate menu: %w", err)
	}

	printPlan(plan)

	if withRecipes {
		fmt.Printf("\n=== RECIPES (%d generated) ===\n", len(processed))
		for _, slug := range processed {
			fmt.Printf("- %s\n", slug)
		}
	}

	if publishPost {
		post, err := a.PublishMenu(plan)
		if err != nil {
			return fmt.Errorf("failed to publish menu: %w", err)
		}
		fmt.Printf("\nPublished: %s (%s)\n", post.Title, post.ID)
	}
	return nil
}

// RunImportCommand imports a recipe from a URL and prints the result.
func (a *App) RunImportCommand(ctx context.Context, url string) error {
	fmt.Printf("Importing recipe from %s...\n", url)

	rec, err := a.ImportRecipe(ctx, url)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported \"%s\" (%d ingredients, %d steps).\n", rec.Title, len(rec.Ingredients), len(rec.Steps))
	return nil
}

func (a *App) recordMeta(meta shared.AgentMeta) {
	if a.metricsStore == nil {
		return
	}
	if err := a.metricsStore.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}
}

func printPlan(plan *menu.WeeklyMenuPlan) {
	fmt.Printf("\n=== MENU DE LA SEMAINE DU %s (%s) ===\n", plan.WeekStartDate, plan.Season)
	for _, day := range plan.DailyMenus {
		fmt.Printf("\n%s (%s)\n", day.Day, day.Date)
		printMeal("  Déjeuner", day.Lunch)
		printMeal("  Dîner   ", day.Dinner)
	}
	if plan.NutritionalBalance != "" {
		fmt.Printf("\nÉquilibre nutritionnel : %s\n", plan.NutritionalBalance)
	}
}

func printMeal(label string, meal menu.DailyMeal) {
	for _, dish := range []*menu.DishInfo{meal.Starter, meal.MainCourse, meal.Dessert} {
		if dish == nil {
			continue
		}
		fmt.Printf("%s: %s (%s)\n", label, dish.Name, dish.DishType)
		label = "          "
	}
}
