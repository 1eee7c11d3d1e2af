package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestReadLDJSON(t *testing.T) {
	t.Run("malformed block does not abort the others", func(t *testing.T) {
		doc := mustDoc(t, `<html><head>
			<script type="application/ld+json">{not json at all</script>
			<script type="application/ld+json">{"@type":"Product","name":"Widget"}</script>
		</head></html>`)

		nodes := ReadLDJSON(doc)
		require.Len(t, nodes, 1)
		assert.Equal(t, "Widget", nodes[0]["name"])
	})

	t.Run("graph elements are yielded in addition to the wrapper", func(t *testing.T) {
		doc := mustDoc(t, `<html><head><script type="application/ld+json">
			{"@context":"https://schema.org","@graph":[
				{"@type":"Organization","name":"Acme"},
				{"@type":"Product","name":"Widget"}
			]}
		</script></head></html>`)

		nodes := ReadLDJSON(doc)
		require.Len(t, nodes, 3)
		assert.Equal(t, "Acme", nodes[1]["name"])
		assert.Equal(t, "Widget", nodes[2]["name"])
	})

	t.Run("array blocks yield each element", func(t *testing.T) {
		doc := mustDoc(t, `<html><head><script type="application/ld+json">
			[{"@type":"Product","name":"A"},{"@type":"Product","name":"B"}]
		</script></head></html>`)

		nodes := ReadLDJSON(doc)
		require.Len(t, nodes, 2)
		assert.Equal(t, "B", nodes[1]["name"])
	})

	t.Run("no blocks yields nothing", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><p>plain page</p></body></html>`)
		assert.Empty(t, ReadLDJSON(doc))
	})
}

func TestReadAppState(t *testing.T) {
	t.Run("present and well formed", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><script id="__NEXT_DATA__" type="application/json">
			{"props":{"pageProps":{"product":{"name":"Widget"}}}}
		</script></body></html>`)

		state, ok := ReadAppState(doc, AppStateScriptID)
		require.True(t, ok)
		assert.Equal(t, "Widget", digString(state, "props", "pageProps", "product", "name"))
	})

	t.Run("missing tag is absent, not an error", func(t *testing.T) {
		doc := mustDoc(t, `<html><body></body></html>`)
		_, ok := ReadAppState(doc, AppStateScriptID)
		assert.False(t, ok)
	})

	t.Run("malformed json is absent", func(t *testing.T) {
		doc := mustDoc(t, `<html><body><script id="__NEXT_DATA__">{broken</script></body></html>`)
		_, ok := ReadAppState(doc, AppStateScriptID)
		assert.False(t, ok)
	})
}

func TestDigString(t *testing.T) {
	node := map[string]any{
		"price": map[string]any{"min": 19.99, "currency": "USD"},
		"count": float64(12),
	}

	assert.Equal(t, "19.99", digString(node, "price", "min"))
	assert.Equal(t, "USD", digString(node, "price", "currency"))
	assert.Equal(t, "12", digString(node, "count"))
	assert.Equal(t, "", digString(node, "missing", "path"))
}
