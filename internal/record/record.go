// Package record defines the canonical extraction outputs and the total
// coercion that turns unreliable loosely-typed input into them. Coercion
// never fails: any field that does not satisfy its contract is silently
// replaced with the documented default. Transport-level failures are the
// pipeline's concern, not this package's.
package record

// Meal types every RecipeRecord is constrained to.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DefaultName is the display-name placeholder for unnamed recipes.
const DefaultName = "Untitled Recipe"

// RecipeRecord is the durable entity the extraction pipeline produces.
// Optional fields marshal as explicit nulls, never absent keys.
type RecipeRecord struct {
	Name             string   `json:"name"`
	MealType         string   `json:"meal_type"`
	Ingredients      string   `json:"ingredients"`
	Instructions     string   `json:"instructions"`
	PrepTimeMinutes  *int     `json:"prep_time_minutes"`
	CookTimeMinutes  *int     `json:"cook_time_minutes"`
	Servings         int      `json:"servings"`
	Difficulty       string   `json:"difficulty"`
	Cuisine          *string  `json:"cuisine"`
	Tags             string   `json:"tags"`
	Notes            *string  `json:"notes"`
	Calories         *float64 `json:"calories"`
	ProteinG         *float64 `json:"protein_g"`
	CarbsG           *float64 `json:"carbs_g"`
	FatG             *float64 `json:"fat_g"`
	FiberG           *float64 `json:"fiber_g"`
	KidFriendlyLevel int      `json:"kid_friendly_level"`
	MakesLeftovers   bool     `json:"makes_leftovers"`
	LeftoverDays     *int     `json:"leftover_days"`
	SourceURL        *string  `json:"source_url"`
	ImageURL         *string  `json:"image_url"`
}

// DietaryTags is the known menu-item dietary vocabulary; anything outside it
// is dropped during menu coercion.
var DietaryTags = map[string]struct{}{
	"vegetarian":  {},
	"vegan":       {},
	"gluten-free": {},
	"dairy-free":  {},
	"nut-free":    {},
	"spicy":       {},
	"shellfish":   {},
}

// MenuItem is a single dish on a scraped restaurant menu.
type MenuItem struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Category    string   `json:"category"`
	DietaryTags []string `json:"dietary_tags"`
}

// MenuSection groups menu items under a heading.
type MenuSection struct {
	SectionName string     `json:"section_name"`
	Items       []MenuItem `json:"items"`
}

// MenuRecord is the restaurant-menu extraction output. Coercion for menus is
// deliberately looser than for recipes: no canonical schema governs menus,
// so a missing section list yields an empty list rather than a failure.
type MenuRecord struct {
	RestaurantName string        `json:"restaurant_name"`
	Cuisine        *string       `json:"cuisine"`
	Sections       []MenuSection `json:"sections"`
}
