package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-menu-planner/internal/llm"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/publish"
	"ai-menu-planner/internal/recipes"
	"ai-menu-planner/internal/research"
	"ai-menu-planner/internal/storage"
)

// Importer fetches a recipe page from the web, extracts it into the recipe
// schema with the model, stores the artifacts and optionally publishes a post.
type Importer struct {
	fetcher   *research.Fetcher
	textGen   llm.TextGenerator
	store     *storage.ArtifactStore
	publisher publish.Client
}

// NewImporter creates an Importer. publisher may be nil when CMS publishing
// is not configured.
func NewImporter(fetcher *research.Fetcher, textGen llm.TextGenerator, store *storage.ArtifactStore, publisher publish.Client) *Importer {
	return &Importer{
		fetcher:   fetcher,
		textGen:   textGen,
		store:     store,
		publisher: publisher,
	}
}

// ImportURL fetches the URL, extracts the recipe using the model, and saves
// it to the artifact store (and the CMS when configured).
func (i *Importer) ImportURL(ctx context.Context, url string) (*recipes.Recipe, error) {
	content, err := i.fetcher.FetchCleanText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "type": "entrée | plat principal | dessert",
  "servings": "e.g. 4 personnes",
  "prep_time": "e.g. 20 min",
  "cook_time": "e.g. 35 min",
  "ingredients": ["quantity + ingredient", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "chef_tips": ""
}

Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page Content:
%s
`, content)

	resp, err := i.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var rec recipes.Recipe
	if err := json.Unmarshal([]byte(cleanJSONResponse(resp.Content)), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}

	slug := menu.Slugify(rec.Title)
	if slug == "" {
		return nil, fmt.Errorf("extracted recipe has no usable title")
	}

	html := recipes.FormatToHTML(rec)
	if err := i.store.SaveJSON(slug, rec); err != nil {
		return nil, err
	}
	if err := i.store.SaveHTML(slug, html); err != nil {
		return nil, err
	}

	if i.publisher != nil {
		if _, err := i.publisher.CreatePost(rec.Title, html, true); err != nil {
			return nil, fmt.Errorf("failed to publish imported recipe: %w", err)
		}
	}

	return &rec, nil
}

// cleanJSONResponse removes markdown code fences from a model response.
func cleanJSONResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}
