package menu

import (
	"fmt"
	"log"
	"strings"
	"unicode"
)

// RecipeSpec is one flattened, individually addressable recipe work-item
// derived from a plan. It lives only for the duration of one pipeline run.
type RecipeSpec struct {
	Name string
	Type string
	Code string
	Day  string
	Meal string
}

var dayCodes = map[string]string{
	"Lundi":    "LUN",
	"Mardi":    "MAR",
	"Mercredi": "MER",
	"Jeudi":    "JEU",
	"Vendredi": "VEN",
	"Samedi":   "SAM",
	"Dimanche": "DIM",
}

var typeCodes = map[string]string{
	DishTypeStarter: "S",
	DishTypeMain:    "M",
	DishTypeDessert: "D",
}

// Flatten walks the plan in a fixed order (days in sequence, lunch before
// dinner, starter then main course then dessert) and emits one RecipeSpec per
// dish. Codes are a pure function of position in that traversal: the per-type
// counters are shared across the whole week, so identical input always yields
// identical, plan-unique codes.
func Flatten(plan *WeeklyMenuPlan) []RecipeSpec {
	specs := make([]RecipeSpec, 0, len(plan.DailyMenus)*4)
	counters := map[string]int{}

	for _, day := range plan.DailyMenus {
		for _, slot := range []struct {
			code string
			meal DailyMeal
		}{
			{"L", day.Lunch},
			{"D", day.Dinner},
		} {
			mealLabel := capitalize(slot.meal.MealType)
			for _, dish := range []*DishInfo{slot.meal.Starter, slot.meal.MainCourse, slot.meal.Dessert} {
				if dish == nil {
					continue
				}
				typeCode, ok := typeCodes[dish.DishType]
				if dish.Name == "" || !ok {
					log.Printf("Warning: skipping malformed dish entry (name=%q, type=%q) on %s", dish.Name, dish.DishType, day.Day)
					continue
				}
				counters[typeCode]++
				specs = append(specs, RecipeSpec{
					Name: dish.Name,
					Type: strings.ToLower(dish.DishType),
					Code: fmt.Sprintf("%s-%s-%s%02d", dayCode(day.Day), slot.code, typeCode, counters[typeCode]),
					Day:  day.Day,
					Meal: mealLabel,
				})
			}
		}
	}
	return specs
}

func dayCode(day string) string {
	if code, ok := dayCodes[day]; ok {
		return code
	}
	runes := []rune(strings.ToUpper(day))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
