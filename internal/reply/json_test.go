package reply

import "testing"

func TestExtractJSON_TaggedFence(t *testing.T) {
	text := "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!"
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected JSON from tagged fence")
	}
	obj, ok := v.(map[string]any)
	if !ok || obj["a"] != float64(1) {
		t.Fatalf("expected {a:1}, got %v", v)
	}
}

func TestExtractJSON_UntaggedFence(t *testing.T) {
	text := "Result:\n```\n{\"name\":\"stew\"}\n```"
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected JSON from untagged fence")
	}
	if v.(map[string]any)["name"] != "stew" {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_BareBraces(t *testing.T) {
	text := `Sure! The recipe is {"name":"soup","servings":2} — hope that helps.`
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected JSON from brace span")
	}
	if v.(map[string]any)["servings"] != float64(2) {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_ArrayReply(t *testing.T) {
	text := "Menu items: [\"salad\",\"pizza\"] as requested."
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected JSON array")
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("expected two-element array, got %v", v)
	}
}

func TestExtractJSON_FirstOfMultipleFences(t *testing.T) {
	text := "```json\n{\"first\":true}\n```\nand also\n```json\n{\"second\":true}\n```"
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected JSON")
	}
	if v.(map[string]any)["first"] != true {
		t.Fatalf("expected the first fenced block, got %v", v)
	}
}

func TestExtractJSON_BrokenFenceFallsThrough(t *testing.T) {
	text := "```\n{broken\n```\nsecond attempt:\n```json\n{\"ok\":true}\n```"
	v, ok := ExtractJSON(text)
	if !ok {
		t.Fatalf("expected the valid later fence to win")
	}
	if v.(map[string]any)["ok"] != true {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	if _, ok := ExtractJSON("I couldn't find a recipe here."); ok {
		t.Fatalf("expected no JSON in plain prose")
	}
}

func TestExtractObject(t *testing.T) {
	obj, ok := ExtractObject("```json\n{\"name\":\"pie\"}\n```")
	if !ok || obj["name"] != "pie" {
		t.Fatalf("expected object, got %v ok=%v", obj, ok)
	}
	if _, ok := ExtractObject("[1,2,3]"); ok {
		t.Fatalf("expected array reply to fail object narrowing")
	}
}
