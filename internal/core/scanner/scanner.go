// Package scanner splits a text value into literal runs and emoji replacements.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/antimoji/emojify/internal/types"
)

const (
	textSelector       = "\ufe0e"
	emojiSelector      = "\ufe0f"
	shortcodeDelimiter = ':'
	darkSchemeMedia    = "(prefers-color-scheme: dark)"

	baseClass   = "emojione"
	customClass = "custom-emoji"
)

// Catalog is the Unicode emoji table the scanner matches against.
type Catalog interface {
	Search(text string) (string, bool)
	Lookup(key string) (types.UnicodeEmojiRecord, bool)
}

// VariantPolicy picks the image variant of an emoji for a color scheme.
type VariantPolicy interface {
	VariantFilename(filename string, scheme types.ColorScheme) string
	NeedsDualVariant(filename string) bool
}

// Options are the already-resolved rendering settings of a scanner.
type Options struct {
	// AssetHost prefixes Unicode emoji image URLs ("" yields root-relative URLs)
	AssetHost string
	// Theme selects the image variant and whether a dark source is added
	Theme types.Theme
	// Autoplay selects animated rather than static custom emoji images
	Autoplay bool
}

// Scanner is safe for concurrent use as long as its catalog and policy are.
type Scanner struct {
	catalog Catalog
	policy  VariantPolicy
	opts    Options
}

// New creates a scanner. An empty theme is treated as light.
func New(catalog Catalog, policy VariantPolicy, opts Options) *Scanner {
	if opts.Theme == "" {
		opts.Theme = types.ThemeLight
	}
	opts.AssetHost = strings.TrimSuffix(opts.AssetHost, "/")
	return &Scanner{
		catalog: catalog,
		policy:  policy,
		opts:    opts,
	}
}

// Options returns the rendering settings of the scanner.
func (s *Scanner) Options() Options {
	return s.opts
}

// Scan splits text into spans covering all of it, in order. Shortcodes are
// only recognized when custom is non-empty. Scan never fails: anything it
// cannot resolve stays literal. Empty literals are never emitted.
func (s *Scanner) Scan(text string, custom types.CustomEmojiMap) []types.Span {
	var spans []types.Span
	customEnabled := len(custom) > 0

	str := text
	i := 0
	for {
		key := ""
		found := false
		atDelimiter := false

		for i < len(str) {
			if customEnabled && str[i] == shortcodeDelimiter {
				atDelimiter = true
				break
			}
			if key, found = s.catalog.Search(str[i:]); found {
				break
			}
			i += runeWidth(str[i:])
		}

		if i >= len(str) {
			break
		}

		var node types.ReplacementNode
		var category types.EmojiCategory
		var end int

		if atDelimiter {
			closing := strings.IndexByte(str[i+1:], shortcodeDelimiter)
			if closing < 0 {
				i++
				continue
			}
			end = i + 1 + closing + 1

			shortcode := str[i:end]
			emoji, ok := custom.Lookup(shortcode)
			if !ok {
				i++
				continue
			}
			node = s.customImage(shortcode, emoji)
			category = types.CategoryCustom
		} else {
			end = i + len(key)

			// A trailing VS15 asks for text presentation.
			if !strings.HasSuffix(key, emojiSelector) && strings.HasPrefix(str[end:], textSelector) {
				i = end + len(textSelector)
				continue
			}

			record, ok := s.catalog.Lookup(key)
			if !ok || !record.HasFilename() {
				i += runeWidth(str[i:])
				continue
			}
			node = s.unicodeNode(key, record)
			category = types.CategoryUnicode
		}

		if i > 0 {
			spans = append(spans, types.Literal(str[:i]))
		}
		spans = append(spans, types.Replacement(node, category))
		str = str[end:]
		i = 0
	}

	if str != "" {
		spans = append(spans, types.Literal(str))
	}
	return spans
}

func (s *Scanner) customImage(shortcode string, emoji types.CustomEmoji) types.Image {
	src := emoji.StaticURL
	if s.opts.Autoplay {
		src = emoji.URL
	}
	return types.Image{
		Src:     src,
		Alt:     shortcode,
		Title:   shortcode,
		Classes: []string{baseClass, customClass},
		Extra: []types.Attribute{
			{Key: "data-original", Val: emoji.URL},
			{Key: "data-static", Val: emoji.StaticURL},
		},
	}
}

func (s *Scanner) unicodeNode(key string, record types.UnicodeEmojiRecord) types.ReplacementNode {
	title := ""
	if record.HasShortCode() {
		title = ":" + record.ShortCode + ":"
	}

	img := types.Image{
		Src:     s.assetURL(s.policy.VariantFilename(record.Filename, s.opts.Theme.Scheme())),
		Alt:     key,
		Title:   title,
		Classes: []string{baseClass},
	}

	if s.opts.Theme.IsAdaptive() && s.policy.NeedsDualVariant(record.Filename) {
		return types.Picture{
			Sources: []types.Source{{
				Media:  darkSchemeMedia,
				Srcset: s.assetURL(s.policy.VariantFilename(record.Filename, types.SchemeDark)),
			}},
			Fallback: img,
		}
	}
	return img
}

func (s *Scanner) assetURL(filename string) string {
	return s.opts.AssetHost + "/emoji/" + filename + ".svg"
}

// runeWidth is the byte width of the first codepoint of str; an invalid byte
// counts as one step.
func runeWidth(str string) int {
	_, size := utf8.DecodeRuneInString(str)
	if size == 0 {
		return 1
	}
	return size
}
