package types

import (
	"fmt"
	"strings"
)

// EmojiCategory tells which catalog a replacement came from.
type EmojiCategory string

const (
	// CategoryUnicode marks replacements of Unicode emoji sequences (e.g. 😀, 👍🏽)
	CategoryUnicode EmojiCategory = "unicode"

	// CategoryCustom marks replacements of server-supplied :shortcode: emoji
	CategoryCustom EmojiCategory = "custom"
)

// ColorScheme is a concrete color scheme an image variant is chosen for.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)

// Theme is the active UI theme. ThemeSystem follows the viewer's
// prefers-color-scheme and renders light by default with a dark source.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(name string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(name))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected light, dark or system)", name)
	}
}

// Scheme returns the color scheme used for the primary image of this theme.
func (t Theme) Scheme() ColorScheme {
	if t == ThemeDark {
		return SchemeDark
	}
	return SchemeLight
}

// IsAdaptive reports whether rendering must account for both color schemes.
func (t Theme) IsAdaptive() bool {
	return t == ThemeSystem
}

// UnicodeEmojiRecord maps one emoji key (a full codepoint sequence) to its image.
// A record without a filename is registered but never rendered.
type UnicodeEmojiRecord struct {
	Key       string `yaml:"key" json:"key"`
	Filename  string `yaml:"filename,omitempty" json:"filename,omitempty"`
	ShortCode string `yaml:"short_code,omitempty" json:"short_code,omitempty"`
}

// HasFilename reports whether the record can be rendered as an image.
func (r UnicodeEmojiRecord) HasFilename() bool {
	return r.Filename != ""
}

// HasShortCode reports whether the record carries a canonical name.
func (r UnicodeEmojiRecord) HasShortCode() bool {
	return r.ShortCode != ""
}

// CustomEmoji is a server-supplied emoji addressed by :shortcode:.
type CustomEmoji struct {
	Shortcode string `yaml:"shortcode" json:"shortcode"`
	URL       string `yaml:"url" json:"url"`
	StaticURL string `yaml:"static_url" json:"static_url"`
	Category  string `yaml:"category,omitempty" json:"category,omitempty"`
}

// HasCategory reports whether the emoji belongs to a named picker category.
func (c CustomEmoji) HasCategory() bool {
	return c.Category != ""
}

// CustomEmojiMap is the per-call custom emoji table keyed by ":shortcode:".
type CustomEmojiMap map[string]CustomEmoji

// Lookup returns the emoji registered for the colon-delimited shortcode.
func (m CustomEmojiMap) Lookup(shortcode string) (CustomEmoji, bool) {
	if m == nil {
		return CustomEmoji{}, false
	}
	emoji, ok := m[shortcode]
	return emoji, ok
}

// Attribute is an extra markup attribute, kept in insertion order.
type Attribute struct {
	Key string
	Val string
}

// ReplacementNode is the markup an emoji occurrence is replaced with.
// It is implemented by Image and Picture only.
type ReplacementNode interface {
	replacementNode()
}

// Image is a single img element.
type Image struct {
	Src     string
	Alt     string
	Title   string
	Classes []string
	Extra   []Attribute
}

func (Image) replacementNode() {}

// Source is one picture source candidate.
type Source struct {
	Media  string
	Srcset string
}

// Picture is a picture element with alternative sources and an img fallback.
type Picture struct {
	Sources  []Source
	Fallback Image
}

func (Picture) replacementNode() {}

// SpanKind distinguishes literal text from replacements.
type SpanKind int

const (
	SpanLiteral SpanKind = iota
	SpanReplacement
)

// Span is one piece of a scanned text value.
type Span struct {
	Kind     SpanKind
	Text     string
	Node     ReplacementNode
	Category EmojiCategory
}

// Literal creates a literal text span.
func Literal(text string) Span {
	return Span{Kind: SpanLiteral, Text: text}
}

// Replacement creates a replacement span for a matched emoji.
func Replacement(node ReplacementNode, category EmojiCategory) Span {
	return Span{Kind: SpanReplacement, Node: node, Category: category}
}

// Stats counts the replacements made by one call.
type Stats struct {
	Unicode int `json:"unicode"`
	Custom  int `json:"custom"`
}

// Total returns the number of replacements of any kind.
func (s Stats) Total() int {
	return s.Unicode + s.Custom
}

// Count adds the replacement spans in spans to the stats.
func (s *Stats) Count(spans []Span) {
	for _, span := range spans {
		if span.Kind != SpanReplacement {
			continue
		}
		switch span.Category {
		case CategoryUnicode:
			s.Unicode++
		case CategoryCustom:
			s.Custom++
		}
	}
}

// Merge adds other to s.
func (s *Stats) Merge(other Stats) {
	s.Unicode += other.Unicode
	s.Custom += other.Custom
}

// PickerEmoji is the picker-facing description of a custom emoji.
type PickerEmoji struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ShortNames     []string `json:"short_names"`
	Text           string   `json:"text"`
	Emoticons      []string `json:"emoticons"`
	Keywords       []string `json:"keywords"`
	ImageURL       string   `json:"imageUrl"`
	Custom         bool     `json:"custom"`
	CustomCategory string   `json:"customCategory,omitempty"`
}
