package menu

import "time"

// Dish types as they appear in the generated menus (French cuisine vocabulary).
const (
	DishTypeStarter = "entrée"
	DishTypeMain    = "plat principal"
	DishTypeDessert = "dessert"
)

// Meal slots of a day.
const (
	MealTypeLunch  = "déjeuner"
	MealTypeDinner = "dîner"
)

// Weekdays holds the 7 French weekday names in calendar order.
var Weekdays = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// Seasons holds the 4 season names used by the menu generator.
var Seasons = []string{"printemps", "été", "automne", "hiver"}

// DishInfo is a single cooked item of a meal.
type DishInfo struct {
	Name                  string   `json:"name"`
	DishType              string   `json:"dish_type"`
	Description           string   `json:"description"`
	SeasonalIngredients   []string `json:"seasonal_ingredients"`
	NutritionalHighlights string   `json:"nutritional_highlights"`
}

// DailyMeal is one meal slot (lunch or dinner). Only the main course is
// guaranteed to be present; starter and dessert stay nil when the source
// menu omitted them.
type DailyMeal struct {
	MealType   string    `json:"meal_type"`
	Starter    *DishInfo `json:"starter,omitempty"`
	MainCourse *DishInfo `json:"main_course"`
	Dessert    *DishInfo `json:"dessert,omitempty"`
}

// DailyMenu is one calendar day with its two meals.
type DailyMenu struct {
	Day    string    `json:"day"`
	Date   string    `json:"date"`
	Lunch  DailyMeal `json:"lunch"`
	Dinner DailyMeal `json:"dinner"`
}

// WeeklyMenuPlan is the root aggregate: exactly 7 daily menus plus the
// dietitian commentary fields produced alongside the menu.
type WeeklyMenuPlan struct {
	WeekStartDate         string      `json:"week_start_date"`
	Season                string      `json:"season"`
	DailyMenus            []DailyMenu `json:"daily_menus"`
	NutritionalBalance    string      `json:"nutritional_balance"`
	GustativeCoherence    string      `json:"gustative_coherence"`
	ConstraintAdaptation  string      `json:"constraint_adaptation"`
	PreferenceIntegration string      `json:"preference_integration"`
}

// ValidDishType reports whether s is one of the three allowed dish types.
func ValidDishType(s string) bool {
	return s == DishTypeStarter || s == DishTypeMain || s == DishTypeDessert
}

// ValidMealType reports whether s is a known meal slot.
func ValidMealType(s string) bool {
	return s == MealTypeLunch || s == MealTypeDinner
}

// ValidWeekday reports whether s is one of the 7 French weekday names.
func ValidWeekday(s string) bool {
	for _, d := range Weekdays {
		if s == d {
			return true
		}
	}
	return false
}

// ValidSeason reports whether s is one of the 4 season names.
func ValidSeason(s string) bool {
	for _, v := range Seasons {
		if s == v {
			return true
		}
	}
	return false
}

// NextMonday returns the Monday strictly after t.
func NextMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, offset)
}

// SeasonFor maps a date to its (northern hemisphere) season name.
func SeasonFor(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "printemps"
	case time.June, time.July, time.August:
		return "été"
	case time.September, time.October, time.November:
		return "automne"
	default:
		return "hiver"
	}
}
