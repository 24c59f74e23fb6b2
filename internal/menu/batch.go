package menu

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RecipeRequest is the work request handed to the recipe-generation
// collaborator for one flattened dish.
type RecipeRequest struct {
	Topic       string
	TopicSlug   string
	Preferences string
}

// RecipeGenerator is the downstream collaborator that turns one work request
// into persisted recipe artifacts. Any error is a per-item failure.
type RecipeGenerator interface {
	Process(ctx context.Context, req RecipeRequest) error
}

// BatchProcessor drives one recipe-generation call per work-item, strictly
// sequentially. No single item's failure aborts the batch.
type BatchProcessor struct {
	generator RecipeGenerator
}

// NewBatchProcessor creates a BatchProcessor around the given collaborator.
func NewBatchProcessor(generator RecipeGenerator) *BatchProcessor {
	return &BatchProcessor{generator: generator}
}

// Process runs the work-items in order and returns the slugs of the items
// that succeeded, in the same order. Failures are logged with the item's code
// and excluded; the caller can diff against the input to find them.
func (p *BatchProcessor) Process(ctx context.Context, specs []RecipeSpec) []string {
	processed := make([]string, 0, len(specs))
	for _, spec := range specs {
		slug := Slugify(spec.Name)
		req := RecipeRequest{
			Topic:       spec.Name,
			TopicSlug:   slug,
			Preferences: fmt.Sprintf("Type: %s, Day: %s, Meal: %s", spec.Type, spec.Day, spec.Meal),
		}
		if err := p.generator.Process(ctx, req); err != nil {
			log.Printf("Warning: recipe %s (%s) failed: %v", spec.Code, spec.Name, err)
			continue
		}
		processed = append(processed, slug)
	}
	return processed
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a filesystem- and URL-safe identifier from a dish name:
// diacritics folded, lowercased, runs of non-alphanumerics collapsed to "-".
func Slugify(name string) string {
	folded, _, err := transform.String(deaccent, name)
	if err != nil {
		folded = name
	}

	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
