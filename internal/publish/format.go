package publish

import (
	"fmt"
	"strings"

	"ai-menu-planner/internal/menu"
)

// FormatMenuHTML renders a weekly plan as the HTML body of a CMS post.
func FormatMenuHTML(plan *menu.WeeklyMenuPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p><i>Semaine du %s — %s</i></p>", plan.WeekStartDate, plan.Season))

	for _, day := range plan.DailyMenus {
		sb.WriteString(fmt.Sprintf("<h2>%s (%s)</h2>", day.Day, day.Date))
		writeMeal(&sb, "Déjeuner", day.Lunch)
		writeMeal(&sb, "Dîner", day.Dinner)
	}

	if plan.NutritionalBalance != "" {
		sb.WriteString("<hr>")
		sb.WriteString(fmt.Sprintf("<p><strong>Équilibre nutritionnel :</strong> %s</p>", plan.NutritionalBalance))
	}

	return sb.String()
}

func writeMeal(sb *strings.Builder, label string, meal menu.DailyMeal) {
	sb.WriteString(fmt.Sprintf("<h3>%s</h3><ul>", label))
	for _, dish := range []*menu.DishInfo{meal.Starter, meal.MainCourse, meal.Dessert} {
		if dish == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("<li><strong>%s</strong> (%s)", dish.Name, dish.DishType))
		if dish.Description != "" {
			sb.WriteString(fmt.Sprintf(" — %s", dish.Description))
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
}
