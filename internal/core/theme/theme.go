// Package theme selects the bordered or plain image variant of an emoji for a color scheme.
package theme

import (
	"sync"

	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/types"
)

const borderSuffix = "_border"

// Emoji that are hard to see on a dark background without an outline.
var darkBordered = []string{
	"🎱",
	"🐜",
	"⚫",
	"🖤",
	"⬛",
	"\u25fc\ufe0f",
	"◾",
	"\u25fc\ufe0f",
	"\u2712\ufe0f",
	"\u25aa\ufe0f",
	"💣",
	"🎳",
	"📷",
	"📸",
	"\u2663\ufe0f",
	"\U0001F576\ufe0f",
	"\u2734\ufe0f",
	"🔌",
	"\U0001F482\u200d\u2640\ufe0f",
	"\U0001F4FD\ufe0f",
	"🍳",
	"🦍",
	"💂",
	"🔪",
	"\U0001F573\ufe0f",
	"\U0001F579\ufe0f",
	"🕋",
	"\U0001F58A\ufe0f",
	"\U0001F58B\ufe0f",
	"\U0001F482\u200d\u2642\ufe0f",
	"🎤",
	"🎓",
	"🎥",
	"🎼",
	"\u2660\ufe0f",
	"🎩",
	"🦃",
	"📼",
	"📹",
	"🎮",
	"🐃",
	"🏴",
	"🐞",
	"🕺",
	"📱",
	"📲",
	"🚲",
	"🪮",
	"\U0001F426\u200d\u2b1b",
}

// Emoji that are hard to see on a light background without an outline.
var lightBordered = []string{
	"👽",
	"⚾",
	"🐔",
	"\u2601\ufe0f",
	"💨",
	"\U0001F54A\ufe0f",
	"👀",
	"🍥",
	"👻",
	"🐐",
	"❕",
	"❔",
	"\u26f8\ufe0f",
	"\U0001F329\ufe0f",
	"🔊",
	"🔇",
	"📃",
	"\U0001F327\ufe0f",
	"🐏",
	"🍚",
	"🍙",
	"🐓",
	"🐑",
	"💀",
	"\u2620\ufe0f",
	"\U0001F328\ufe0f",
	"🔉",
	"🔈",
	"💬",
	"💭",
	"🏐",
	"\U0001F3F3\ufe0f",
	"⚪",
	"⬜",
	"◽",
	"\u25fb\ufe0f",
	"\u25ab\ufe0f",
	"🪽",
	"🪿",
}

// FilenameResolver maps emoji keys to image filenames.
type FilenameResolver interface {
	Filenames(keys ...string) []string
}

// Policy holds the bordered filename sets of both color schemes. It is
// immutable after construction.
type Policy struct {
	light map[string]struct{}
	dark  map[string]struct{}
}

var (
	defaultOnce   sync.Once
	defaultPolicy *Policy
)

// Default returns the policy built against the default catalog.
func Default() *Policy {
	defaultOnce.Do(func() {
		defaultPolicy = NewPolicy(catalog.Default())
	})
	return defaultPolicy
}

// NewPolicy resolves the bordered emoji lists to filenames through resolver.
// Emoji the resolver does not know are left out.
func NewPolicy(resolver FilenameResolver) *Policy {
	return &Policy{
		light: toSet(resolver.Filenames(lightBordered...)),
		dark:  toSet(resolver.Filenames(darkBordered...)),
	}
}

// VariantFilename returns filename with the border suffix when the emoji
// needs an outline under scheme.
func (p *Policy) VariantFilename(filename string, scheme types.ColorScheme) string {
	bordered := p.light
	if scheme == types.SchemeDark {
		bordered = p.dark
	}
	if _, ok := bordered[filename]; ok {
		return filename + borderSuffix
	}
	return filename
}

// NeedsDualVariant reports whether the light and dark variants of filename differ.
func (p *Policy) NeedsDualVariant(filename string) bool {
	return p.VariantFilename(filename, types.SchemeLight) != p.VariantFilename(filename, types.SchemeDark)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
