package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/core/theme"
	"github.com/antimoji/emojify/internal/types"
)

const (
	cloud          = "☁"
	thumbsUp       = "\U0001F44D"
	thumbsUpMedium = "\U0001F44D\U0001F3FD"
	assetHost      = "https://cdn.example"
)

func testCatalog() *catalog.Unicode {
	return catalog.New([]types.UnicodeEmojiRecord{
		{Key: "😀", Filename: "1f600"},
		{Key: "😃", Filename: "1f603", ShortCode: "smiley"},
		{Key: thumbsUp, Filename: "1f44d", ShortCode: "+1"},
		{Key: thumbsUpMedium, Filename: "1f44d-1f3fd"},
		{Key: cloud, Filename: "2601", ShortCode: "cloud"},
		{Key: cloud + "\ufe0f", Filename: "2601", ShortCode: "cloud"},
		{Key: "🫥"},
		{Key: "🎱", Filename: "1f3b1"},
		{Key: "👽", Filename: "1f47d"},
	})
}

func newScanner(opts Options) *Scanner {
	cat := testCatalog()
	if opts.AssetHost == "" {
		opts.AssetHost = assetHost
	}
	return New(cat, theme.NewPolicy(cat), opts)
}

func unicodeImage(alt, filename, title string) types.Image {
	return types.Image{
		Src:     assetHost + "/emoji/" + filename + ".svg",
		Alt:     alt,
		Title:   title,
		Classes: []string{"emojione"},
	}
}

var knownCustom = types.CustomEmojiMap{
	":known:": {Shortcode: "known", URL: "a.gif", StaticURL: "a.png"},
}

func customImage(src string) types.Image {
	return types.Image{
		Src:     src,
		Alt:     ":known:",
		Title:   ":known:",
		Classes: []string{"emojione", "custom-emoji"},
		Extra: []types.Attribute{
			{Key: "data-original", Val: "a.gif"},
			{Key: "data-static", Val: "a.png"},
		},
	}
}

func TestScanner_Unicode(t *testing.T) {
	sc := newScanner(Options{Theme: types.ThemeLight})

	tests := []struct {
		name     string
		text     string
		expected []types.Span
	}{
		{
			name:     "empty text yields no spans",
			text:     "",
			expected: nil,
		},
		{
			name:     "plain text is a single literal",
			text:     "Hello world: nothing here",
			expected: []types.Span{types.Literal("Hello world: nothing here")},
		},
		{
			name: "emoji between text",
			text: "Hello 😀 world",
			expected: []types.Span{
				types.Literal("Hello "),
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
				types.Literal(" world"),
			},
		},
		{
			name: "short code becomes title",
			text: "😃",
			expected: []types.Span{
				types.Replacement(unicodeImage("😃", "1f603", ":smiley:"), types.CategoryUnicode),
			},
		},
		{
			name: "adjacent emoji produce no empty literals",
			text: "😀😀",
			expected: []types.Span{
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
			},
		},
		{
			name: "longest match wins",
			text: thumbsUpMedium + "!",
			expected: []types.Span{
				types.Replacement(unicodeImage(thumbsUpMedium, "1f44d-1f3fd", ""), types.CategoryUnicode),
				types.Literal("!"),
			},
		},
		{
			name:     "text presentation selector suppresses replacement",
			text:     "rain " + cloud + "\ufe0e today",
			expected: []types.Span{types.Literal("rain " + cloud + "\ufe0e today")},
		},
		{
			name: "suppression only affects that occurrence",
			text: cloud + "\ufe0e" + cloud,
			expected: []types.Span{
				types.Literal(cloud + "\ufe0e"),
				types.Replacement(unicodeImage(cloud, "2601", ":cloud:"), types.CategoryUnicode),
			},
		},
		{
			name: "emoji presentation selector is part of the match",
			text: cloud + "\ufe0f",
			expected: []types.Span{
				types.Replacement(unicodeImage(cloud+"\ufe0f", "2601", ":cloud:"), types.CategoryUnicode),
			},
		},
		{
			name: "match ending in VS16 is not suppressed by a following VS15",
			text: cloud + "\ufe0f\ufe0e",
			expected: []types.Span{
				types.Replacement(unicodeImage(cloud+"\ufe0f", "2601", ":cloud:"), types.CategoryUnicode),
				types.Literal("\ufe0e"),
			},
		},
		{
			name:     "registered key without filename stays literal",
			text:     "🫥 shy",
			expected: []types.Span{types.Literal("🫥 shy")},
		},
		{
			name: "invalid utf8 advances one byte",
			text: "\xff😀",
			expected: []types.Span{
				types.Literal("\xff"),
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
			},
		},
		{
			name:     "colon is literal when custom emoji are disabled",
			text:     ":known:",
			expected: []types.Span{types.Literal(":known:")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sc.Scan(tt.text, nil))
		})
	}
}

func TestScanner_Custom(t *testing.T) {
	sc := newScanner(Options{Theme: types.ThemeLight})

	tests := []struct {
		name     string
		text     string
		expected []types.Span
	}{
		{
			name: "registered shortcode",
			text: "hi :known: there",
			expected: []types.Span{
				types.Literal("hi "),
				types.Replacement(customImage("a.png"), types.CategoryCustom),
				types.Literal(" there"),
			},
		},
		{
			name:     "unregistered shortcode",
			text:     "hi :unknown: there",
			expected: []types.Span{types.Literal("hi :unknown: there")},
		},
		{
			name:     "unterminated shortcode",
			text:     "hi :known there",
			expected: []types.Span{types.Literal("hi :known there")},
		},
		{
			name: "leading colon stays literal",
			text: "::known:",
			expected: []types.Span{
				types.Literal(":"),
				types.Replacement(customImage("a.png"), types.CategoryCustom),
			},
		},
		{
			name: "unicode emoji inside an unregistered candidate",
			text: "a:b 😀 c:d",
			expected: []types.Span{
				types.Literal("a:b "),
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
				types.Literal(" c:d"),
			},
		},
		{
			name: "custom and unicode together",
			text: ":known:😀",
			expected: []types.Span{
				types.Replacement(customImage("a.png"), types.CategoryCustom),
				types.Replacement(unicodeImage("😀", "1f600", ""), types.CategoryUnicode),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sc.Scan(tt.text, knownCustom))
		})
	}

	t.Run("autoplay selects the animated image", func(t *testing.T) {
		animated := newScanner(Options{Theme: types.ThemeLight, Autoplay: true})
		spans := animated.Scan(":known:", knownCustom)
		require.Len(t, spans, 1)
		assert.Equal(t, customImage("a.gif"), spans[0].Node)
	})

	t.Run("empty table disables shortcodes", func(t *testing.T) {
		spans := sc.Scan(":known:", types.CustomEmojiMap{})
		assert.Equal(t, []types.Span{types.Literal(":known:")}, spans)
	})
}

func TestScanner_Themes(t *testing.T) {
	t.Run("dark theme uses dark border set", func(t *testing.T) {
		sc := newScanner(Options{Theme: types.ThemeDark})
		spans := sc.Scan("🎱👽", nil)
		require.Len(t, spans, 2)
		assert.Equal(t, unicodeImage("🎱", "1f3b1_border", ""), spans[0].Node)
		assert.Equal(t, unicodeImage("👽", "1f47d", ""), spans[1].Node)
	})

	t.Run("light theme uses light border set", func(t *testing.T) {
		sc := newScanner(Options{Theme: types.ThemeLight})
		spans := sc.Scan("🎱👽", nil)
		require.Len(t, spans, 2)
		assert.Equal(t, unicodeImage("🎱", "1f3b1", ""), spans[0].Node)
		assert.Equal(t, unicodeImage("👽", "1f47d_border", ""), spans[1].Node)
	})

	t.Run("system theme renders a picture when variants differ", func(t *testing.T) {
		sc := newScanner(Options{Theme: types.ThemeSystem})
		spans := sc.Scan("🎱👽😀", nil)
		require.Len(t, spans, 3)

		assert.Equal(t, types.Picture{
			Sources: []types.Source{{
				Media:  "(prefers-color-scheme: dark)",
				Srcset: assetHost + "/emoji/1f3b1_border.svg",
			}},
			Fallback: unicodeImage("🎱", "1f3b1", ""),
		}, spans[0].Node)

		assert.Equal(t, types.Picture{
			Sources: []types.Source{{
				Media:  "(prefers-color-scheme: dark)",
				Srcset: assetHost + "/emoji/1f47d.svg",
			}},
			Fallback: unicodeImage("👽", "1f47d_border", ""),
		}, spans[1].Node)

		assert.Equal(t, unicodeImage("😀", "1f600", ""), spans[2].Node)
	})

	t.Run("empty theme defaults to light", func(t *testing.T) {
		sc := newScanner(Options{})
		assert.Equal(t, types.ThemeLight, sc.Options().Theme)
	})

	t.Run("asset host trailing slash is trimmed", func(t *testing.T) {
		sc := newScanner(Options{AssetHost: assetHost + "/", Theme: types.ThemeLight})
		spans := sc.Scan("😀", nil)
		require.Len(t, spans, 1)
		assert.Equal(t, assetHost+"/emoji/1f600.svg", spans[0].Node.(types.Image).Src)
	})
}

// reconstruct rebuilds the scanned text from literals and alt texts.
func reconstruct(spans []types.Span) string {
	var b strings.Builder
	for _, span := range spans {
		switch node := span.Node.(type) {
		case nil:
			b.WriteString(span.Text)
		case types.Image:
			b.WriteString(node.Alt)
		case types.Picture:
			b.WriteString(node.Fallback.Alt)
		}
	}
	return b.String()
}

func TestScanner_SpansCoverInput(t *testing.T) {
	sc := newScanner(Options{Theme: types.ThemeSystem})
	inputs := []string{
		"",
		"plain",
		"😀 and :known: and :unknown: and " + thumbsUpMedium,
		cloud + "\ufe0e" + cloud + "\ufe0f🫥🎱",
		"::::",
		"\xff\xfe:known:\xff",
		strings.Repeat("😀:", 50),
	}

	for _, input := range inputs {
		spans := sc.Scan(input, knownCustom)
		assert.Equal(t, input, reconstruct(spans), "input %q", input)
		for _, span := range spans {
			if span.Kind == types.SpanLiteral {
				assert.NotEmpty(t, span.Text)
			}
		}
	}
}
