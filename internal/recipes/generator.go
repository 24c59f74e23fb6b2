package recipes

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"ai-menu-planner/internal/llm"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/shared"
	"ai-menu-planner/internal/storage"
)

//go:embed recipe_prompt.md
var recipePrompt string

// MetaRecorder receives execution metadata for each model call. A nil
// recorder disables recording.
type MetaRecorder interface {
	RecordMeta(meta shared.AgentMeta) error
}

// Generator is the downstream recipe-generation collaborator: one work
// request in, one persisted artifact pair (JSON + HTML) out.
type Generator struct {
	textGen llm.TextGenerator
	store   *storage.ArtifactStore
	metrics MetaRecorder
}

// NewGenerator creates a Generator. metrics may be nil.
func NewGenerator(textGen llm.TextGenerator, store *storage.ArtifactStore, metrics MetaRecorder) *Generator {
	return &Generator{textGen: textGen, store: store, metrics: metrics}
}

// Process generates the recipe for one work request and persists its
// artifacts under the request's slug. Any failure is returned to the caller,
// which treats it as a per-item failure.
func (g *Generator) Process(ctx context.Context, req menu.RecipeRequest) error {
	start := time.Now()
	prompt, err := buildRecipePrompt(req)
	if err != nil {
		return err
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt)
	if g.metrics != nil {
		_ = g.metrics.RecordMeta(shared.AgentMeta{
			AgentName: "RecipeWriter",
			Usage:     resp.Usage,
			Latency:   time.Since(start),
		})
	}
	if err != nil {
		return fmt.Errorf("recipe generation failed: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(cleanJSONResponse(resp.Content)), &rec); err != nil {
		return fmt.Errorf("failed to parse recipe JSON: %w. Response: %s", err, resp.Content)
	}
	if rec.Title == "" {
		rec.Title = req.Topic
	}

	if err := g.store.SaveJSON(req.TopicSlug, rec); err != nil {
		return err
	}
	return g.store.SaveHTML(req.TopicSlug, FormatToHTML(rec))
}

// cleanJSONResponse removes markdown code fences from a model response.
func cleanJSONResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

func buildRecipePrompt(req menu.RecipeRequest) (string, error) {
	tmpl, err := template.New("recipe").Parse(recipePrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
