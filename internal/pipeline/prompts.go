package pipeline

// System prompts enforce a strict JSON-only contract so the reply extractor
// has a fighting chance. Field names and allowed values mirror the record
// package exactly; the model is told to emit null, not omit, unknown fields.

const recipeSystemPrompt = `You are a recipe extraction assistant. Respond with strict JSON only, no narration and no markdown fences. The JSON schema is a single object:
{"name": string, "meal_type": "breakfast"|"lunch"|"dinner"|"snack", "ingredients": string (newline-delimited), "instructions": string (newline-delimited, numbered "1. ..."), "prep_time_minutes": number|null, "cook_time_minutes": number|null, "servings": number, "difficulty": "easy"|"medium"|"hard", "cuisine": string|null, "tags": string (comma-delimited, max 10), "notes": string|null, "calories": number|null, "protein_g": number|null, "carbs_g": number|null, "fat_g": number|null, "fiber_g": number|null, "kid_friendly_level": number (1-10), "makes_leftovers": boolean, "leftover_days": number|null, "source_url": string|null, "image_url": string|null}
Use null for any value the source does not state. Do not invent nutrition numbers. Estimate kid_friendly_level and makes_leftovers from the dish itself.`

const menuSystemPrompt = `You are a restaurant menu extraction assistant. Respond with strict JSON only, no narration and no markdown fences. The JSON schema is a single object:
{"restaurant_name": string, "cuisine": string|null, "sections": [{"section_name": string, "items": [{"name": string, "description": string|null, "price": string|null, "category": string, "dietary_tags": string[]}]}]}
dietary_tags values are drawn from: vegetarian, vegan, gluten-free, dairy-free, nut-free, spicy, shellfish. Use an empty array when none apply. Preserve the menu's own section order.`

const visionUserPrompt = `Extract the recipe shown in this image. If the image shows a dish rather than written instructions, reconstruct a faithful recipe for it.`

func urlUserPrompt(structuredJSON, reducedText, sourceURL string) string {
	s := "Extract the recipe from this web page.\nSource URL: " + sourceURL + "\n"
	if structuredJSON != "" {
		s += "\nStructured data found on the page:\n" + structuredJSON + "\n"
	}
	s += "\nPage text:\n" + reducedText
	return s
}

func textUserPrompt(text string) string {
	return "Extract the recipe from this text:\n\n" + text
}

func menuUserPrompt(reducedText, sourceURL string) string {
	return "Extract the menu from this restaurant page.\nSource URL: " + sourceURL + "\n\nPage text:\n" + reducedText
}
