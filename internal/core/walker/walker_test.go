package walker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/core/scanner"
	"github.com/antimoji/emojify/internal/core/theme"
	"github.com/antimoji/emojify/internal/types"
)

const grinningImg = `<img draggable="false" class="emojione" alt="😀" title="" src="https://cdn.example/emoji/1f600.svg"/>`

func newScanner(t types.Theme) *scanner.Scanner {
	cat := catalog.New([]types.UnicodeEmojiRecord{
		{Key: "😀", Filename: "1f600"},
		{Key: "🎱", Filename: "1f3b1"},
	})
	return scanner.New(cat, theme.NewPolicy(cat), scanner.Options{
		AssetHost: "https://cdn.example",
		Theme:     t,
	})
}

func parseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	require.NoError(t, err)
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container
}

func render(t *testing.T, container *html.Node) string {
	t.Helper()
	var b strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&b, c))
	}
	return b.String()
}

func walkMarkup(t *testing.T, sc Scanner, markup string, custom types.CustomEmojiMap) (string, types.Stats) {
	t.Helper()
	root := parseFragment(t, markup)
	stats := Walk(root, sc, custom)
	return render(t, root), stats
}

func TestWalk(t *testing.T) {
	sc := newScanner(types.ThemeLight)

	tests := []struct {
		name     string
		markup   string
		expected string
		unicode  int
	}{
		{
			name:     "text without emoji is untouched",
			markup:   "<p>Hello world</p>",
			expected: "<p>Hello world</p>",
		},
		{
			name:     "emoji in paragraph",
			markup:   "<p>Hello 😀 world</p>",
			expected: "<p>Hello " + grinningImg + " world</p>",
			unicode:  1,
		},
		{
			name:     "top level text",
			markup:   "😀",
			expected: grinningImg,
			unicode:  1,
		},
		{
			name:     "nested elements",
			markup:   `<a href="/x"><b>😀</b> and 😀</a>`,
			expected: `<a href="/x"><b>` + grinningImg + `</b> and ` + grinningImg + `</a>`,
			unicode:  2,
		},
		{
			name:     "invisible subtree is skipped",
			markup:   `<p><span class="invisible">😀 <b>😀</b></span>😀</p>`,
			expected: `<p><span class="invisible">😀 <b>😀</b></span>` + grinningImg + `</p>`,
			unicode:  1,
		},
		{
			name:     "invisible among other classes",
			markup:   `<span class="ellipsis invisible x">😀</span>`,
			expected: `<span class="ellipsis invisible x">😀</span>`,
		},
		{
			name:     "class containing invisible as a substring is visited",
			markup:   `<span class="invisibles">😀</span>`,
			expected: `<span class="invisibles">` + grinningImg + `</span>`,
			unicode:  1,
		},
		{
			name:     "attributes are not scanned",
			markup:   `<span title="😀">x</span>`,
			expected: `<span title="😀">x</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := walkMarkup(t, sc, tt.markup, nil)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, types.Stats{Unicode: tt.unicode}, stats)
		})
	}
}

func TestWalk_CustomEmojiAttributes(t *testing.T) {
	sc := newScanner(types.ThemeLight)
	custom := types.CustomEmojiMap{
		":blob:": {Shortcode: "blob", URL: "a.gif", StaticURL: "a.png"},
	}

	out, stats := walkMarkup(t, sc, "<p>:blob:</p>", custom)

	assert.Equal(t,
		`<p><img draggable="false" class="emojione custom-emoji" alt=":blob:" title=":blob:" src="a.png" data-original="a.gif" data-static="a.png"/></p>`,
		out)
	assert.Equal(t, types.Stats{Custom: 1}, stats)
}

func TestWalk_Picture(t *testing.T) {
	sc := newScanner(types.ThemeSystem)

	out, stats := walkMarkup(t, sc, "<p>🎱</p>", nil)

	assert.Equal(t,
		`<p><picture><source media="(prefers-color-scheme: dark)" srcset="https://cdn.example/emoji/1f3b1_border.svg"/>`+
			`<img draggable="false" class="emojione" alt="🎱" title="" src="https://cdn.example/emoji/1f3b1.svg"/></picture></p>`,
		out)
	assert.Equal(t, 1, stats.Total())
}

func TestWalk_UnchangedTextNodeIsKept(t *testing.T) {
	sc := newScanner(types.ThemeLight)
	root := parseFragment(t, "<p>plain</p>")
	text := root.FirstChild.FirstChild
	require.Equal(t, html.TextNode, text.Type)

	Walk(root, sc, nil)

	assert.Same(t, text, root.FirstChild.FirstChild)
	assert.Nil(t, text.NextSibling)
}

func TestWalk_Idempotent(t *testing.T) {
	sc := newScanner(types.ThemeSystem)
	root := parseFragment(t, "<p>a 😀 b 🎱 c</p>")

	Walk(root, sc, nil)
	first := render(t, root)

	stats := Walk(root, sc, nil)
	assert.Equal(t, first, render(t, root))
	assert.Zero(t, stats.Total())
}

func TestWalk_NilRoot(t *testing.T) {
	assert.Equal(t, types.Stats{}, Walk(nil, newScanner(types.ThemeLight), nil))
}
