package menu

// Fixed dishes used by the fallback plan. The tables are package constants so
// FallbackPlan is a pure function: every call returns the identical structure.
var fallbackLunches = [7]string{
	"Poulet rôti aux herbes",
	"Quiche aux poireaux",
	"Pavé de saumon, riz pilaf",
	"Gratin de courgettes au chèvre",
	"Boeuf bourguignon",
	"Risotto aux champignons",
	"Rôti de porc, purée maison",
}

var fallbackDinners = [7]string{
	"Soupe de légumes et croûtons",
	"Omelette aux fines herbes",
	"Salade composée au thon",
	"Pâtes aux tomates confites",
	"Velouté de potimarron",
	"Croque-monsieur, salade verte",
	"Tarte fine aux légumes",
}

const (
	fallbackWeekStart = "2025-01-06"
	fallbackSeason    = "hiver"
)

// FallbackPlan returns the fixed sample plan used when coercion and repair of
// the generated menu both fail. It keeps the pipeline available: downstream
// consumers always receive a schema-valid 7-day plan.
func FallbackPlan() *WeeklyMenuPlan {
	menus := make([]DailyMenu, 0, 7)
	for i, day := range Weekdays {
		menus = append(menus, DailyMenu{
			Day:    day,
			Date:   dateForDayIndex(fallbackWeekStart, i),
			Lunch:  fallbackMeal(MealTypeLunch, fallbackLunches[i]),
			Dinner: fallbackMeal(MealTypeDinner, fallbackDinners[i]),
		})
	}

	return &WeeklyMenuPlan{
		WeekStartDate:         fallbackWeekStart,
		Season:                fallbackSeason,
		DailyMenus:            menus,
		NutritionalBalance:    "Semaine type alternant viandes, poissons et plats végétariens.",
		GustativeCoherence:    "Plats de saison simples, saveurs classiques de la cuisine familiale.",
		ConstraintAdaptation:  "Menu de secours générique, sans contrainte particulière.",
		PreferenceIntegration: "Menu de secours générique, préférences non prises en compte.",
	}
}

func fallbackMeal(mealType, mainName string) DailyMeal {
	return DailyMeal{
		MealType: mealType,
		MainCourse: &DishInfo{
			Name:                  mainName,
			DishType:              DishTypeMain,
			Description:           "Plat du menu de secours.",
			SeasonalIngredients:   []string{"légumes d'hiver"},
			NutritionalHighlights: "Apport équilibré",
		},
	}
}
