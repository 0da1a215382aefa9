package record

import (
	"net/url"
	"strings"
)

// CoerceRecipe is a total function from arbitrary loosely-typed input to a
// RecipeRecord satisfying every field constraint. Wrong types, missing keys
// and out-of-range values are replaced field by field; unknown keys are
// ignored. It never returns an error.
func CoerceRecipe(in map[string]any) RecipeRecord {
	r := RecipeRecord{
		Name:             stringOr(in["name"], DefaultName),
		MealType:         enumOr(in["meal_type"], MealDinner, MealBreakfast, MealLunch, MealDinner, MealSnack),
		Ingredients:      stringOr(in["ingredients"], ""),
		Instructions:     stringOr(in["instructions"], ""),
		PrepTimeMinutes:  optNonNegInt(in["prep_time_minutes"]),
		CookTimeMinutes:  optNonNegInt(in["cook_time_minutes"]),
		Servings:         positiveIntOr(in["servings"], 4),
		Difficulty:       enumOr(in["difficulty"], DifficultyMedium, DifficultyEasy, DifficultyMedium, DifficultyHard),
		Cuisine:          optString(in["cuisine"]),
		Tags:             stringOr(in["tags"], ""),
		Notes:            optString(in["notes"]),
		Calories:         optNonNegFloat(in["calories"]),
		ProteinG:         optNonNegFloat(in["protein_g"]),
		CarbsG:           optNonNegFloat(in["carbs_g"]),
		FatG:             optNonNegFloat(in["fat_g"]),
		FiberG:           optNonNegFloat(in["fiber_g"]),
		KidFriendlyLevel: clampedIntOr(in["kid_friendly_level"], 5, 1, 10),
		MakesLeftovers:   boolOr(in["makes_leftovers"], true),
		LeftoverDays:     optNonNegInt(in["leftover_days"]),
		SourceURL:        optAbsoluteURL(in["source_url"]),
		ImageURL:         optAbsoluteURL(in["image_url"]),
	}
	return r
}

// stringOr trims a string value; non-strings and empty results become the
// fallback.
func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// optString trims a string value; non-strings and empty results become nil.
func optString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optAbsoluteURL accepts only absolute URL strings.
func optAbsoluteURL(v any) *string {
	s := optString(v)
	if s == nil {
		return nil
	}
	u, err := url.Parse(*s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil
	}
	return s
}

// enumOr returns the value when it is an exact member of the allowed set,
// otherwise the default. Absent and wrong-typed values take the default too.
func enumOr(v any, def string, allowed ...string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// numeric unwraps the numeric types a decoded JSON value or an already-valid
// record can carry.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func optNonNegInt(v any) *int {
	f, ok := numeric(v)
	if !ok || f < 0 {
		return nil
	}
	n := int(f)
	return &n
}

func optNonNegFloat(v any) *float64 {
	f, ok := numeric(v)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

func positiveIntOr(v any, fallback int) int {
	f, ok := numeric(v)
	if !ok || f < 1 {
		return fallback
	}
	return int(f)
}

// clampedIntOr coerces into [lo, hi] by clamping rather than rejection; only
// non-numeric input falls back to the default.
func clampedIntOr(v any, fallback, lo, hi int) int {
	f, ok := numeric(v)
	if !ok {
		return fallback
	}
	n := int(f)
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func boolOr(v any, fallback bool) bool {
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}
