// Package pdfcard renders a RecipeRecord as a printable one-page recipe
// card. Layout is intentionally simple: title, facts line, ingredients and
// instructions, footer link to the source.
package pdfcard

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mealdeck/mealdeck/internal/record"
)

// Write renders rec as a PDF at outPath.
func Write(rec record.RecipeRecord, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, rec.Name, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, factsLine(rec), "", "L", false)
	if rec.Cuisine != nil && *rec.Cuisine != "" {
		pdf.MultiCell(0, 5, "Cuisine: "+*rec.Cuisine, "", "L", false)
	}
	if rec.Tags != "" {
		pdf.MultiCell(0, 5, "Tags: "+rec.Tags, "", "L", false)
	}
	pdf.Ln(3)

	writeSection(pdf, "Ingredients", rec.Ingredients)
	writeSection(pdf, "Instructions", rec.Instructions)

	if rec.Notes != nil && *rec.Notes != "" {
		writeSection(pdf, "Notes", *rec.Notes)
	}
	if rec.SourceURL != nil && *rec.SourceURL != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.WriteLinkString(5, "Source: "+*rec.SourceURL, *rec.SourceURL)
		pdf.Ln(6)
	}
	return pdf.OutputFileAndClose(outPath)
}

func factsLine(rec record.RecipeRecord) string {
	parts := []string{
		fmt.Sprintf("Serves %d", rec.Servings),
		titleWord(rec.Difficulty),
		titleWord(rec.MealType),
	}
	if rec.PrepTimeMinutes != nil {
		parts = append(parts, fmt.Sprintf("Prep %d min", *rec.PrepTimeMinutes))
	}
	if rec.CookTimeMinutes != nil {
		parts = append(parts, fmt.Sprintf("Cook %d min", *rec.CookTimeMinutes))
	}
	return strings.Join(parts, "  |  ")
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeSection(pdf *gofpdf.Fpdf, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(3)
}
