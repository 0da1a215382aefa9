package schemaorg

import (
	"strings"
	"testing"
)

func TestFindRecipe_BareObject(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"Recipe","name":"Shakshuka","recipeYield":"2 servings"}
	</script></head><body></body></html>`

	c, ok := FindRecipe(page)
	if !ok {
		t.Fatalf("expected a recipe candidate")
	}
	if c.Fields["name"] != "Shakshuka" {
		t.Fatalf("expected name Shakshuka, got %v", c.Fields["name"])
	}
}

func TestFindRecipe_GraphTypeArray(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@graph":[{"@type":"WebPage","name":"Some page"},{"@type":["Recipe","Thing"],"name":"Pad Thai"}]}
	</script></head><body></body></html>`

	c, ok := FindRecipe(page)
	if !ok {
		t.Fatalf("expected recipe from @graph")
	}
	if c.Fields["name"] != "Pad Thai" {
		t.Fatalf("expected the Recipe-typed graph node, got %v", c.Fields["name"])
	}
}

func TestFindRecipe_ArrayOfObjects(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	[{"@type":"BreadcrumbList"},{"@type":"Recipe","name":"Granola"}]
	</script></head><body></body></html>`

	c, ok := FindRecipe(page)
	if !ok || c.Fields["name"] != "Granola" {
		t.Fatalf("expected Granola from array block, got ok=%v", ok)
	}
}

func TestFindRecipe_SkipsMalformedBlocks(t *testing.T) {
	page := `<html><head>
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">{"@type":"Recipe","name":"Tacos"}</script>
	</head><body></body></html>`

	c, ok := FindRecipe(page)
	if !ok || c.Fields["name"] != "Tacos" {
		t.Fatalf("expected malformed block to be skipped, got ok=%v", ok)
	}
}

func TestFindRecipe_NoMatch(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{"@type":"WebSite"}</script></head></html>`
	if _, ok := FindRecipe(page); ok {
		t.Fatalf("expected no recipe for non-Recipe types")
	}
}

func TestFindRecipe_TypeMatchIsCaseSensitive(t *testing.T) {
	page := `<html><head><script type="application/ld+json">{"@type":"recipe","name":"x"}</script></head></html>`
	if _, ok := FindRecipe(page); ok {
		t.Fatalf("expected lowercase type tag to be rejected")
	}
}

func TestFindRecipe_ImagePriority(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
	}{
		{
			name: "string",
			page: `<html><head><script type="application/ld+json">{"@type":"Recipe","name":"a","image":"https://img.example/a.jpg"}</script></head></html>`,
			want: "https://img.example/a.jpg",
		},
		{
			name: "array",
			page: `<html><head><script type="application/ld+json">{"@type":"Recipe","name":"a","image":["https://img.example/b.jpg","https://img.example/c.jpg"]}</script></head></html>`,
			want: "https://img.example/b.jpg",
		},
		{
			name: "object",
			page: `<html><head><script type="application/ld+json">{"@type":"Recipe","name":"a","image":{"@type":"ImageObject","url":"https://img.example/d.jpg"}}</script></head></html>`,
			want: "https://img.example/d.jpg",
		},
		{
			name: "og fallback",
			page: `<html><head><meta property="og:image" content="https://img.example/og.jpg"><script type="application/ld+json">{"@type":"Recipe","name":"a"}</script></head></html>`,
			want: "https://img.example/og.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := FindRecipe(tc.page)
			if !ok {
				t.Fatalf("expected recipe")
			}
			if c.ImageURL != tc.want {
				t.Fatalf("expected image %q, got %q", tc.want, c.ImageURL)
			}
		})
	}
}

func TestNormalize_FullStructuredScenario(t *testing.T) {
	page := `<html><head><script type="application/ld+json">
	{"@type":"Recipe","name":"Veggie Omelette",
	 "recipeYield":"4 servings","cookTime":"PT20M","recipeCategory":"Breakfast",
	 "recipeIngredient":["3 eggs","1 bell pepper"],
	 "recipeInstructions":[{"@type":"HowToStep","text":"Whisk eggs."},{"@type":"HowToStep","text":"Cook gently."}]}
	</script></head></html>`

	c, ok := FindRecipe(page)
	if !ok {
		t.Fatalf("expected recipe")
	}
	out := Normalize(c, "https://example.com/omelette")
	if out["servings"] != float64(4) {
		t.Fatalf("expected servings 4, got %v", out["servings"])
	}
	if out["cook_time_minutes"] != float64(20) {
		t.Fatalf("expected cook time 20, got %v", out["cook_time_minutes"])
	}
	if out["meal_type"] != "breakfast" {
		t.Fatalf("expected breakfast, got %v", out["meal_type"])
	}
	if out["difficulty"] != "easy" {
		t.Fatalf("expected easy, got %v", out["difficulty"])
	}
	if !strings.Contains(out["instructions"].(string), "1. Whisk eggs.") {
		t.Fatalf("expected numbered instructions, got %v", out["instructions"])
	}
	if out["source_url"] != "https://example.com/omelette" {
		t.Fatalf("expected source url, got %v", out["source_url"])
	}
}
