// Package htmltext reduces raw HTML documents to plain, structure-preserving
// text that is cheap enough to embed in a model prompt or scan with simple
// heuristics. It is not a general HTML renderer: it keeps line structure that
// roughly matches visual structure and drops everything else.
package htmltext

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// MaxChars bounds the reduced text so downstream model calls have a
// predictable cost ceiling.
const MaxChars = 12000

// recipeContainerMarkers are class fragments used by common recipe plugins.
// When one is present the reduction narrows to that subtree first, which
// strips most page chrome before the length cap applies.
var recipeContainerMarkers = []string{
	"wprm-recipe-container",
	"tasty-recipes",
	"mv-create-card",
	"recipe-card",
	"recipe-content",
}

// Reduce converts raw HTML into capped plain text. Script, style, nav,
// header, footer, aside and comment nodes are removed entirely; block-level
// boundaries become newlines; entities are unescaped; whitespace runs are
// collapsed. Pure function of its input.
func Reduce(input string) string {
	node, err := html.Parse(bytes.NewReader([]byte(input)))
	if err != nil || node == nil {
		return ""
	}

	content := findRecipeContainer(node)
	if content == nil {
		content = findFirst(node, "body")
	}
	if content == nil {
		content = node
	}

	var b strings.Builder
	collectText(&b, content)

	text := normalizeWhitespace(b.String())
	text = norm.NFC.String(text)
	if len(text) > MaxChars {
		cut := MaxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func findRecipeContainer(n *html.Node) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode {
			for _, attr := range cur.Attr {
				if !strings.EqualFold(attr.Key, "class") && !strings.EqualFold(attr.Key, "id") {
					continue
				}
				val := strings.ToLower(attr.Val)
				for _, marker := range recipeContainerMarkers {
					if strings.Contains(val, marker) {
						res = cur
						return
					}
				}
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	dfs(n)
	return res
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "script", "style", "noscript", "nav", "header", "footer", "aside", "iframe", "svg", "form", "button":
			return
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "ul", "ol", "div", "section", "table":
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := strings.ReplaceAll(n.Data, "\t", " ")
		data = strings.ReplaceAll(data, "\r", " ")
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "div", "section":
			b.WriteString("\n\n")
		case "li", "tr":
			b.WriteString("\n")
		}
	}
}

// Unescape resolves the handful of entities that matter for recipe text.
// The x/net/html parser already unescapes text nodes, but reduced text can
// also come from regex paths over raw fragments, so this stays exported.
func Unescape(s string) string {
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	return replacer.Replace(s)
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) > 0 {
				out = append(out, "")
			}
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\u00a0' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
