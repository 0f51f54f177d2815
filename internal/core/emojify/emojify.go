// Package emojify replaces emoji in HTML markup with image markup.
//
// An Engine is a thin facade over the scanner and tree walker: it parses the
// markup as the body of a div, substitutes emoji in every visible text node
// and serializes the result. It holds no mutable state and may be shared
// between goroutines.
//
// Markup without any replacement is returned byte for byte. Otherwise the
// whole fragment is serialized by x/net/html, which escapes quotes in text
// and writes void elements in self-closing form (<img ... />).
package emojify

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/antimoji/emojify/internal/core/walker"
	ctxutil "github.com/antimoji/emojify/internal/observability/context"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/types"
)

// Engine renders emoji in HTML fragments.
type Engine struct {
	scanner walker.Scanner
	logger  logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report markup that could not be processed.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine around a scanner. Without WithLogger the global
// logger is used.
func New(sc walker.Scanner, opts ...Option) *Engine {
	e := &Engine{
		scanner: sc,
		logger:  logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emojify returns markup with every emoji outside invisible elements replaced
// by image markup. Custom shortcodes are only matched when custom is non-empty.
func (e *Engine) Emojify(markup string, custom types.CustomEmojiMap) string {
	out, _ := e.EmojifyWithStats(markup, custom)
	return out
}

// EmojifyWithStats is Emojify that also reports how many replacements were made.
// Markup that cannot be parsed or rendered is returned unchanged.
func (e *Engine) EmojifyWithStats(markup string, custom types.CustomEmojiMap) (string, types.Stats) {
	if markup == "" {
		return markup, types.Stats{}
	}

	ctx := ctxutil.NewComponentContext("emojify", "engine")

	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		e.logger.Warn(ctx, "failed to parse markup", "error", err, "bytes", len(markup))
		return markup, types.Stats{}
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	if len(custom) == 0 {
		custom = nil
	}
	stats := walker.Walk(container, e.scanner, custom)
	if stats.Total() == 0 {
		return markup, stats
	}

	var b strings.Builder
	b.Grow(len(markup))
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			e.logger.Warn(ctx, "failed to render markup", "error", err, "bytes", len(markup))
			return markup, types.Stats{}
		}
	}

	e.logger.Debug(ctx, "emojified markup",
		"unicode", stats.Unicode,
		"custom", stats.Custom,
	)
	return b.String(), stats
}
