package recipes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-menu-planner/internal/llm"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/shared"
	"ai-menu-planner/internal/storage"
)

type mockTextGenerator struct {
	response string
	err      error
	prompts  []string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{
		Content: m.response,
		Usage:   shared.TokenUsage{PromptTokens: 50, CompletionTokens: 150, TotalTokens: 200, Model: "test-model"},
	}, nil
}

type mockMetaRecorder struct {
	metas []shared.AgentMeta
}

func (m *mockMetaRecorder) RecordMeta(meta shared.AgentMeta) error {
	m.metas = append(m.metas, meta)
	return nil
}

const validRecipeJSON = "```json\n" + `{
  "title": "Poulet rôti aux herbes",
  "type": "plat principal",
  "servings": "4 personnes",
  "prep_time": "15 min",
  "cook_time": "1 h 10",
  "ingredients": ["1 poulet fermier", "2 branches de thym"],
  "steps": ["Préchauffer le four.", "Enfourner le poulet."],
  "chef_tips": "Arroser régulièrement."
}` + "\n```"

func TestGeneratorProcess(t *testing.T) {
	store, err := storage.NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	textGen := &mockTextGenerator{response: validRecipeJSON}
	recorder := &mockMetaRecorder{}
	gen := NewGenerator(textGen, store, recorder)

	req := menu.RecipeRequest{
		Topic:       "Poulet rôti aux herbes",
		TopicSlug:   "poulet-roti-aux-herbes",
		Preferences: "Type: plat principal, Day: Lundi, Meal: Déjeuner",
	}
	if err := gen.Process(context.Background(), req); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if !store.Exists("poulet-roti-aux-herbes") {
		t.Error("Expected the JSON artifact to be saved")
	}

	var rec Recipe
	if err := store.LoadJSON("poulet-roti-aux-herbes", &rec); err != nil {
		t.Fatalf("Failed to load saved recipe: %v", err)
	}
	if rec.Title != "Poulet rôti aux herbes" {
		t.Errorf("Unexpected title: %s", rec.Title)
	}
	if len(rec.Steps) != 2 {
		t.Errorf("Expected 2 steps, got %d", len(rec.Steps))
	}

	if len(recorder.metas) != 1 {
		t.Fatalf("Expected 1 recorded meta, got %d", len(recorder.metas))
	}
	if recorder.metas[0].AgentName != "RecipeWriter" {
		t.Errorf("Expected agent name 'RecipeWriter', got '%s'", recorder.metas[0].AgentName)
	}
	if recorder.metas[0].Usage.TotalTokens != 200 {
		t.Errorf("Expected usage to be recorded, got %+v", recorder.metas[0].Usage)
	}

	if len(textGen.prompts) != 1 || !strings.Contains(textGen.prompts[0], "Poulet rôti aux herbes") {
		t.Error("Expected the topic to appear in the prompt")
	}
}

func TestGeneratorProcessEmptyTitleDefaultsToTopic(t *testing.T) {
	store, err := storage.NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	textGen := &mockTextGenerator{response: `{"title": "", "ingredients": [], "steps": []}`}
	gen := NewGenerator(textGen, store, nil)

	req := menu.RecipeRequest{Topic: "Tarte aux pommes", TopicSlug: "tarte-aux-pommes"}
	if err := gen.Process(context.Background(), req); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	var rec Recipe
	if err := store.LoadJSON("tarte-aux-pommes", &rec); err != nil {
		t.Fatalf("Failed to load saved recipe: %v", err)
	}
	if rec.Title != "Tarte aux pommes" {
		t.Errorf("Expected the topic as fallback title, got '%s'", rec.Title)
	}
}

func TestGeneratorProcessModelError(t *testing.T) {
	store, err := storage.NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	gen := NewGenerator(&mockTextGenerator{err: errors.New("model unavailable")}, store, nil)

	req := menu.RecipeRequest{Topic: "Quiche", TopicSlug: "quiche"}
	if err := gen.Process(context.Background(), req); err == nil {
		t.Error("Expected an error when the model call fails")
	}
	if store.Exists("quiche") {
		t.Error("Expected no artifact on failure")
	}
}

func TestGeneratorProcessInvalidJSON(t *testing.T) {
	store, err := storage.NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	gen := NewGenerator(&mockTextGenerator{response: "voici la recette: prenez un poulet"}, store, nil)

	req := menu.RecipeRequest{Topic: "Poulet", TopicSlug: "poulet"}
	if err := gen.Process(context.Background(), req); err == nil {
		t.Error("Expected an error for an unparsable response")
	}
}

func TestFormatToHTML(t *testing.T) {
	rec := Recipe{
		Title:       "Gratin dauphinois",
		Type:        "plat principal",
		Servings:    "6 personnes",
		PrepTime:    "20 min",
		CookTime:    "1 h",
		Ingredients: []string{"1 kg de pommes de terre", "50 cl de crème"},
		Steps:       []string{"Éplucher les pommes de terre.", "Enfourner."},
		ChefTips:    "Frotter le plat à l'ail.",
	}

	html := FormatToHTML(rec)

	for _, want := range []string{
		"<h1>Gratin dauphinois</h1>",
		"<h2>Ingrédients</h2>",
		"<li>1 kg de pommes de terre</li>",
		"<h2>Préparation</h2>",
		"<li>Éplucher les pommes de terre.</li>",
		"Astuce du chef",
		"6 personnes",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}
