package menu

import (
	"fmt"
	"time"
)

// Default values used when the generated menu is missing or mangles a field.
// Repair never leaves a required field null or empty; its failure mode is
// "good defaults chosen", not an error.
const (
	placeholderName        = "Plat à préciser"
	placeholderDescription = "Description à venir"
	placeholderNutrition   = "Apport équilibré"
	placeholderIngredient  = "ingrédients de saison"
)

// RepairDish normalizes a dish-shaped mapping. defaultType is the dish type
// to substitute when the candidate's type is absent or not one of the three
// allowed values (the caller knows which slot the dish sits in).
func RepairDish(candidate map[string]any, defaultType string) map[string]any {
	if !ValidDishType(defaultType) {
		defaultType = DishTypeMain
	}

	out := map[string]any{
		"name":        stringOr(candidate["name"], placeholderName),
		"description": stringOr(candidate["description"], placeholderDescription),
	}

	dishType, _ := candidate["dish_type"].(string)
	if !ValidDishType(dishType) {
		dishType = defaultType
	}
	out["dish_type"] = dishType

	// A null or wrong-typed ingredient list becomes a non-empty placeholder
	// list so consumers never treat "missing" as a distinct state. A list
	// that is genuinely empty stays empty.
	ingredients := stringList(candidate["seasonal_ingredients"])
	if ingredients == nil {
		ingredients = []any{placeholderIngredient}
	}
	out["seasonal_ingredients"] = ingredients

	out["nutritional_highlights"] = stringOr(candidate["nutritional_highlights"], placeholderNutrition)
	return out
}

// RepairMeal normalizes a meal-shaped mapping for the given slot. Only the
// main course is force-created when absent; starter and dessert remain
// omitted unless the source carried them.
func RepairMeal(candidate map[string]any, mealType string) map[string]any {
	if !ValidMealType(mealType) {
		mealType = MealTypeLunch
	}

	out := map[string]any{
		"meal_type":   mealType,
		"main_course": RepairDish(asMap(candidate["main_course"]), DishTypeMain),
	}
	if starter := asMap(candidate["starter"]); starter != nil {
		out["starter"] = RepairDish(starter, DishTypeStarter)
	}
	if dessert := asMap(candidate["dessert"]); dessert != nil {
		out["dessert"] = RepairDish(dessert, DishTypeDessert)
	}
	return out
}

// RepairDay normalizes a day-shaped mapping, synthesizing lunch and dinner
// when they are missing.
func RepairDay(candidate map[string]any) map[string]any {
	day, _ := candidate["day"].(string)
	if !ValidWeekday(day) {
		day = Weekdays[0]
	}
	date, _ := candidate["date"].(string)

	return map[string]any{
		"day":    day,
		"date":   date,
		"lunch":  RepairMeal(asMap(candidate["lunch"]), MealTypeLunch),
		"dinner": RepairMeal(asMap(candidate["dinner"]), MealTypeDinner),
	}
}

// RepairPlan normalizes a plan-shaped mapping into a WeeklyMenuPlan shape:
// exactly 7 daily menus, each bad entry independently repaired rather than
// discarded, well-formed entries preserved at their original position,
// missing days synthesized in weekday order.
func RepairPlan(candidate map[string]any) map[string]any {
	weekStart := stringOr(candidate["week_start_date"], "")
	if weekStart == "" {
		weekStart = NextMonday(time.Now()).Format("2006-01-02")
	}

	season, _ := candidate["season"].(string)
	if !ValidSeason(season) {
		season = seasonForWeek(weekStart)
	}

	days := asList(candidate["daily_menus"])
	repaired := make([]any, 0, 7)
	for i := 0; i < 7; i++ {
		var entry map[string]any
		if i < len(days) {
			entry = asMap(days[i])
		}
		day := RepairDay(entry)
		if rawDay, _ := entry["day"].(string); !ValidWeekday(rawDay) {
			day["day"] = Weekdays[i]
		}
		if rawDate, _ := entry["date"].(string); rawDate == "" {
			day["date"] = dateForDayIndex(weekStart, i)
		}
		repaired = append(repaired, day)
	}

	return map[string]any{
		"week_start_date":        weekStart,
		"season":                 season,
		"daily_menus":            repaired,
		"nutritional_balance":    stringOr(candidate["nutritional_balance"], "Menus construits pour un apport hebdomadaire équilibré."),
		"gustative_coherence":    stringOr(candidate["gustative_coherence"], "Variété des saveurs au fil de la semaine."),
		"constraint_adaptation":  stringOr(candidate["constraint_adaptation"], "Aucune contrainte particulière signalée."),
		"preference_integration": stringOr(candidate["preference_integration"], "Préférences prises en compte dans la mesure du possible."),
	}
}

// dateForDayIndex derives the ISO date of the i-th day of the week, or an
// empty string when the week start itself is not a parseable date.
func dateForDayIndex(weekStart string, i int) string {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return ""
	}
	return start.AddDate(0, 0, i).Format("2006-01-02")
}

func seasonForWeek(weekStart string) string {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return Seasons[0]
	}
	return SeasonFor(start)
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// stringList keeps string items, renders scalar items as strings, and drops
// nested structures. Returns nil when v is not a list at all.
func stringList(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			out = append(out, it)
		case float64, int, int64, bool:
			out = append(out, fmt.Sprint(it))
		}
	}
	return out
}
