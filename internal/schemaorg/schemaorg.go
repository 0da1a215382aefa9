// Package schemaorg locates and parses schema.org Recipe markup embedded in
// web pages as JSON-LD, and normalizes its loosely-typed fields into the flat
// shape the record coercer expects. The variance of the source format (fields
// may be strings, arrays, or nested objects depending on the publishing site)
// stops at this package boundary.
package schemaorg

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Candidate is a parsed schema.org Recipe object plus the page-level image
// fallback. Fields holds the raw loosely-typed JSON-LD object.
type Candidate struct {
	Fields   map[string]any
	ImageURL string
}

// FindRecipe scans every JSON-LD script block in the page and returns the
// first object typed as Recipe. Blocks may hold a bare object, an array of
// objects, or an object with a @graph array; @type may be a string or an
// array of strings. Malformed blocks are skipped. Returns false when no block
// yields a Recipe.
func FindRecipe(rawHTML string) (*Candidate, bool) {
	root, err := html.Parse(bytes.NewReader([]byte(rawHTML)))
	if err != nil || root == nil {
		return nil, false
	}

	for _, block := range jsonLDBlocks(root) {
		var payload any
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			continue
		}
		if obj, ok := recipeObject(payload); ok {
			c := &Candidate{Fields: obj}
			c.ImageURL = imageURL(obj["image"])
			if c.ImageURL == "" {
				c.ImageURL = ogImage(root)
			}
			return c, true
		}
	}
	return nil, false
}

func jsonLDBlocks(root *html.Node) []string {
	var blocks []string
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "script") {
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, "type") && strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json") {
					if n.FirstChild != nil {
						blocks = append(blocks, strings.TrimSpace(n.FirstChild.Data))
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(root)
	return blocks
}

// recipeObject walks a decoded JSON-LD payload and returns the first object
// whose @type equals or includes "Recipe". The match is case-sensitive per
// the schema.org vocabulary.
func recipeObject(payload any) (map[string]any, bool) {
	switch v := payload.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v, true
		}
		if graph, ok := v["@graph"]; ok {
			return recipeObject(graph)
		}
	case []any:
		for _, item := range v {
			if obj, ok := recipeObject(item); ok {
				return obj, true
			}
		}
	}
	return nil, false
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// imageURL resolves the schema.org image field, which may be a bare URL
// string, an array of URLs or image objects, or a single {url: ...} object.
func imageURL(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		if u, ok := val["url"].(string); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

// ogImage returns the page's social-preview image, the fallback when the
// recipe object itself carries no image.
func ogImage(root *html.Node) string {
	var res string
	var dfs func(*html.Node)
	dfs = func(n *html.Node) {
		if res != "" {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "meta") {
			var prop, content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "property", "name":
					prop = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			if prop == "og:image" && strings.TrimSpace(content) != "" {
				res = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != "" {
				return
			}
		}
	}
	dfs(root)
	return res
}
