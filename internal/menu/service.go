package menu

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"log"
	"time"

	"ai-menu-planner/internal/llm"
	"ai-menu-planner/internal/shared"
)

//go:embed menu_prompt.md
var menuPrompt string

type menuPromptData struct {
	UserRequest string
	WeekStart   string
	Season      string
}

// Service is the façade external callers invoke: it sequences the upstream
// generation call, coercion, repair and (on total failure) the fallback plan,
// and optionally drives the recipe batch.
type Service struct {
	textGen   llm.TextGenerator
	processor *BatchProcessor
}

// NewService creates a Service. generator may be nil when the caller only
// ever generates plans without recipes.
func NewService(textGen llm.TextGenerator, generator RecipeGenerator) *Service {
	s := &Service{textGen: textGen}
	if generator != nil {
		s.processor = NewBatchProcessor(generator)
	}
	return s
}

// GeneratePlan asks the model for a weekly menu and coerces the response into
// a valid plan. The returned plan is never nil: upstream or coercion failure
// degrades to the fixed fallback plan with a logged warning.
func (s *Service) GeneratePlan(ctx context.Context, userRequest string) (*WeeklyMenuPlan, shared.AgentMeta, error) {
	start := time.Now()
	weekStart := NextMonday(time.Now())

	prompt, err := buildMenuPrompt(menuPromptData{
		UserRequest: userRequest,
		WeekStart:   weekStart.Format("2006-01-02"),
		Season:      SeasonFor(weekStart),
	})
	if err != nil {
		return nil, shared.AgentMeta{AgentName: "MenuChef"}, err
	}

	meta := shared.AgentMeta{AgentName: "MenuChef"}
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		log.Printf("Warning: menu generation failed, using fallback plan: %v", err)
		return FallbackPlan(), meta, nil
	}

	plan, err := Coerce(resp)
	if err != nil {
		log.Printf("Warning: menu response not coercible, using fallback plan: %v", err)
		return FallbackPlan(), meta, nil
	}
	return plan, meta, nil
}

// GenerateWithRecipes generates a plan, flattens it into recipe work-items
// and drives the recipe batch. It returns the plan and the slugs of the
// recipes that were generated successfully.
func (s *Service) GenerateWithRecipes(ctx context.Context, userRequest string) (*WeeklyMenuPlan, []string, shared.AgentMeta, error) {
	plan, meta, err := s.GeneratePlan(ctx, userRequest)
	if err != nil {
		return nil, nil, meta, err
	}
	if s.processor == nil {
		return plan, nil, meta, nil
	}

	specs := Flatten(plan)
	processed := s.processor.Process(ctx, specs)
	if len(processed) < len(specs) {
		log.Printf("Warning: %d of %d recipes were not generated", len(specs)-len(processed), len(specs))
	}
	return plan, processed, meta, nil
}

func buildMenuPrompt(data menuPromptData) (string, error) {
	tmpl, err := template.New("menu").Parse(menuPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
