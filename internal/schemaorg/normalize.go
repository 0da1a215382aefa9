package schemaorg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`(?i)^PT(?:(\d+)H)?(?:(\d+)M)?`)

// ParseDuration converts an ISO-8601 style duration token (PT#H#M, both parts
// optional) into total minutes. Returns false for absent or unparseable
// tokens.
func ParseDuration(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	m := durationRe.FindStringSubmatch(token)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, false
	}
	minutes := 0
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		minutes += h * 60
	}
	if m[2] != "" {
		mm, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		minutes += mm
	}
	return minutes, true
}

// FlattenIngredients joins an array-of-strings ingredient list into a
// newline-delimited block. A bare string passes through unchanged.
func FlattenIngredients(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		var lines []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					lines = append(lines, s)
				}
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// FlattenInstructions produces a numbered, newline-delimited instruction
// block from any of the three shapes sites publish: plain strings, HowToStep
// objects with a text field, or HowToSection objects nesting an
// itemListElement list of steps. Nested steps get a step.substep compound
// number.
func FlattenInstructions(v any) string {
	items, ok := v.([]any)
	if !ok {
		if s, sok := v.(string); sok {
			return strings.TrimSpace(s)
		}
		return ""
	}
	var lines []string
	step := 0
	for _, item := range items {
		switch inst := item.(type) {
		case string:
			if s := strings.TrimSpace(inst); s != "" {
				step++
				lines = append(lines, fmt.Sprintf("%d. %s", step, s))
			}
		case map[string]any:
			if nested, ok := inst["itemListElement"].([]any); ok {
				step++
				sub := 0
				for _, n := range nested {
					text := stepText(n)
					if text == "" {
						continue
					}
					sub++
					lines = append(lines, fmt.Sprintf("%d.%d. %s", step, sub, text))
				}
				continue
			}
			if text := stepText(inst); text != "" {
				step++
				lines = append(lines, fmt.Sprintf("%d. %s", step, text))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func stepText(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if s, ok := val["text"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

var intTokenRe = regexp.MustCompile(`\d+`)

// ServingsFromYield pulls the first integer out of a recipeYield value,
// which may be a string ("4 servings") or an array of strings. Defaults to 4.
func ServingsFromYield(v any) int {
	switch val := v.(type) {
	case string:
		if m := intTokenRe.FindString(val); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 {
				return n
			}
		}
	case float64:
		if n := int(val); n > 0 {
			return n
		}
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				if m := intTokenRe.FindString(s); m != "" {
					if n, err := strconv.Atoi(m); err == nil && n > 0 {
						return n
					}
				}
			}
		}
	}
	return 4
}

const maxTags = 10

// MergeTags combines recipeCategory and keywords (each a string, possibly
// comma-delimited, or an array of strings) into a deduplicated comma-joined
// list capped at ten entries.
func MergeTags(category, keywords any) string {
	var tags []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(tags) >= maxTags {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		tags = append(tags, s)
	}
	collect := func(v any) {
		switch val := v.(type) {
		case string:
			for _, part := range strings.Split(val, ",") {
				add(part)
			}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		}
	}
	collect(category)
	collect(keywords)
	return strings.Join(tags, ", ")
}

// InferDifficulty estimates difficulty from total hands-on minutes; the
// schema.org vocabulary has no explicit difficulty field.
func InferDifficulty(prepMinutes, cookMinutes int) string {
	total := prepMinutes + cookMinutes
	switch {
	case total <= 30:
		return "easy"
	case total > 60:
		return "hard"
	default:
		return "medium"
	}
}

// InferMealType maps category text onto the meal-type vocabulary. Anything
// unmatched is dinner.
func InferMealType(category any) string {
	var text string
	switch val := category.(type) {
	case string:
		text = val
	case []any:
		var parts []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		text = strings.Join(parts, " ")
	}
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "breakfast"):
		return "breakfast"
	case strings.Contains(text, "lunch"):
		return "lunch"
	case strings.Contains(text, "snack"), strings.Contains(text, "appetizer"):
		return "snack"
	default:
		return "dinner"
	}
}

// Normalize converts a Candidate into the flat loosely-typed map the record
// coercer accepts. Durations that fail to parse are simply absent.
func Normalize(c *Candidate, sourceURL string) map[string]any {
	f := c.Fields
	out := map[string]any{
		"name":         stringField(f["name"]),
		"ingredients":  FlattenIngredients(f["recipeIngredient"]),
		"instructions": FlattenInstructions(f["recipeInstructions"]),
		"servings":     float64(ServingsFromYield(f["recipeYield"])),
		"meal_type":    InferMealType(f["recipeCategory"]),
		"tags":         MergeTags(f["recipeCategory"], f["keywords"]),
	}

	prep, prepOK := ParseDuration(stringField(f["prepTime"]))
	cook, cookOK := ParseDuration(stringField(f["cookTime"]))
	if prepOK {
		out["prep_time_minutes"] = float64(prep)
	}
	if cookOK {
		out["cook_time_minutes"] = float64(cook)
	}
	out["difficulty"] = InferDifficulty(prep, cook)

	if cuisine := stringField(f["recipeCuisine"]); cuisine != "" {
		out["cuisine"] = cuisine
	}
	if sourceURL != "" {
		out["source_url"] = sourceURL
	}
	if c.ImageURL != "" {
		out["image_url"] = c.ImageURL
	}
	return out
}

func stringField(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
