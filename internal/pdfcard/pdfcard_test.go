package pdfcard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mealdeck/mealdeck/internal/record"
)

func TestWrite_ProducesPDF(t *testing.T) {
	prep := 10
	src := "https://example.com/recipes/oats"
	rec := record.RecipeRecord{
		Name:            "Overnight Oats",
		MealType:        record.MealBreakfast,
		Ingredients:     "2 cups oats\n1 cup milk",
		Instructions:    "1. Mix everything.\n2. Chill overnight.",
		Servings:        4,
		Difficulty:      record.DifficultyEasy,
		PrepTimeMinutes: &prep,
		SourceURL:       &src,
	}
	out := filepath.Join(t.TempDir(), "card.pdf")
	if err := Write(rec, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(b) < 4 || string(b[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF (len %d)", len(b))
	}
}

func TestWrite_EmptySectionsSkipped(t *testing.T) {
	rec := record.RecipeRecord{Name: "Bare", MealType: record.MealDinner, Difficulty: record.DifficultyMedium, Servings: 4}
	out := filepath.Join(t.TempDir(), "bare.pdf")
	if err := Write(rec, out); err != nil {
		t.Fatalf("write: %v", err)
	}
}
