// Package reply recovers structured JSON from free-form model output. Models
// wrap their payloads in commentary, markdown fences, or trailing notes; the
// extraction here tolerates all of that and only gives up when no candidate
// substring parses strictly.
package reply

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFenceRe = regexp.MustCompile("(?si)```json\\s*\\n?(.*?)```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")
)

// ExtractJSON returns the first syntactically valid JSON value found in text.
// Candidates are tried in order: fenced blocks tagged json, any fenced block,
// then the outermost brace-delimited (or bracket-delimited) span. Returns
// false when nothing parses.
func ExtractJSON(text string) (any, bool) {
	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		if v, ok := tryParse(m[1]); ok {
			return v, true
		}
	}
	for _, m := range anyFenceRe.FindAllStringSubmatch(text, -1) {
		if v, ok := tryParse(m[1]); ok {
			return v, true
		}
	}
	if v, ok := tryParse(delimitedSpan(text, '{', '}')); ok {
		return v, true
	}
	if v, ok := tryParse(delimitedSpan(text, '[', ']')); ok {
		return v, true
	}
	return nil, false
}

// ExtractObject is ExtractJSON narrowed to object-shaped payloads, the common
// case for record replies.
func ExtractObject(text string) (map[string]any, bool) {
	v, ok := ExtractJSON(text)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func tryParse(candidate string) (any, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, false
	}
	return v, true
}

// delimitedSpan returns the substring from the first open delimiter to the
// last close delimiter, or empty when the pair is absent or inverted.
func delimitedSpan(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return ""
	}
	end := strings.LastIndexByte(text, close)
	if end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
