package record

import "strings"

// CoerceMenu converts a loose menu payload into a MenuRecord. Menus have no
// canonical schema, so coercion stays permissive: a missing or malformed
// section list yields an empty list, items without a name are dropped, and
// dietary tags are filtered to the known vocabulary. Never errors.
func CoerceMenu(in map[string]any) MenuRecord {
	m := MenuRecord{
		RestaurantName: stringOr(in["restaurant_name"], "Unknown Restaurant"),
		Cuisine:        optString(in["cuisine"]),
		Sections:       []MenuSection{},
	}

	sections, ok := in["sections"].([]any)
	if !ok {
		return m
	}
	for _, raw := range sections {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		section := MenuSection{
			SectionName: stringOr(obj["section_name"], "Menu"),
			Items:       []MenuItem{},
		}
		if items, ok := obj["items"].([]any); ok {
			for _, ri := range items {
				if item, ok := coerceMenuItem(ri); ok {
					section.Items = append(section.Items, item)
				}
			}
		}
		m.Sections = append(m.Sections, section)
	}
	return m
}

func coerceMenuItem(v any) (MenuItem, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return MenuItem{}, false
	}
	name, ok := obj["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return MenuItem{}, false
	}
	item := MenuItem{
		Name:        strings.TrimSpace(name),
		Description: optString(obj["description"]),
		Price:       optString(obj["price"]),
		Category:    stringOr(obj["category"], "other"),
		DietaryTags: []string{},
	}
	if tags, ok := obj["dietary_tags"].([]any); ok {
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				continue
			}
			s = strings.ToLower(strings.TrimSpace(s))
			if _, known := DietaryTags[s]; known {
				item.DietaryTags = append(item.DietaryTags, s)
			}
		}
	}
	return item, true
}
