package extract

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AppStateScriptID is the element id of the framework-injected JSON blob
// carrying the data the page was rendered from.
const AppStateScriptID = "__NEXT_DATA__"

// ReadLDJSON collects every machine-readable node from the page's
// application/ld+json blocks. A block may be a single object, an object
// carrying a @graph array, or a bare array; all shapes are flattened into one
// node list. A malformed block is skipped, never fatal: one broken script tag
// must not cost the data in the others.
func ReadLDJSON(doc *goquery.Document) []map[string]any {
	var nodes []map[string]any

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err == nil {
			nodes = append(nodes, obj)
			if graph, ok := obj["@graph"].([]any); ok {
				for _, item := range graph {
					if m, ok := item.(map[string]any); ok {
						nodes = append(nodes, m)
					}
				}
			}
			return
		}

		var arr []any
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			for _, item := range arr {
				if m, ok := item.(map[string]any); ok {
					nodes = append(nodes, m)
				}
			}
			return
		}

		slog.Debug("skipping malformed ld+json block", "component", "structured_reader")
	})

	return nodes
}

// ReadAppState locates the script tag with the given element id and parses
// its content as JSON. Callers pick named paths out of the generic structure.
// A missing tag or bad JSON yields absent, never an error.
func ReadAppState(doc *goquery.Document, scriptID string) (map[string]any, bool) {
	raw := strings.TrimSpace(doc.Find("script#" + scriptID).First().Text())
	if raw == "" {
		return nil, false
	}

	var state map[string]any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		slog.Debug("skipping malformed app state", "component", "structured_reader", "script_id", scriptID)
		return nil, false
	}
	return state, true
}

// dig walks nested maps along a key path.
func dig(node map[string]any, path ...string) (any, bool) {
	var current any = node
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func digMap(node map[string]any, path ...string) (map[string]any, bool) {
	v, ok := dig(node, path...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func digSlice(node map[string]any, path ...string) ([]any, bool) {
	v, ok := dig(node, path...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// digString reads a value at path and renders it as the string the page
// carried. JSON numbers are formatted without exponent noise so "19.99"
// stays "19.99".
func digString(node map[string]any, path ...string) string {
	v, ok := dig(node, path...)
	if !ok {
		return ""
	}
	return stringify(v)
}

func digBool(node map[string]any, path ...string) bool {
	v, ok := dig(node, path...)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
