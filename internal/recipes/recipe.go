package recipes

import (
	"fmt"
	"strings"
)

// Recipe is the structured recipe produced for one menu work-item.
type Recipe struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Servings    string   `json:"servings"`
	PrepTime    string   `json:"prep_time"`
	CookTime    string   `json:"cook_time"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ChefTips    string   `json:"chef_tips"`
}

// FormatToHTML renders the recipe as a standalone HTML fragment, the
// companion artifact to the JSON document.
func FormatToHTML(r Recipe) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", r.Title))
	if r.Type != "" {
		sb.WriteString(fmt.Sprintf("<p><i>%s</i></p>", r.Type))
	}

	sb.WriteString("<h2>Ingrédients</h2><ul>")
	for _, ing := range r.Ingredients {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", ing))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Préparation</h2><ol>")
	for _, step := range r.Steps {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", step))
	}
	sb.WriteString("</ol>")

	if r.ChefTips != "" {
		sb.WriteString(fmt.Sprintf("<p><strong>Astuce du chef :</strong> %s</p>", r.ChefTips))
	}

	sb.WriteString("<hr>")
	sb.WriteString(fmt.Sprintf("<p><strong>Préparation :</strong> %s | <strong>Cuisson :</strong> %s | <strong>Portions :</strong> %s</p>",
		r.PrepTime, r.CookTime, r.Servings))

	return sb.String()
}
