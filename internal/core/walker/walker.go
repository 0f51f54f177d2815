// Package walker applies emoji substitution to the text nodes of an HTML tree.
package walker

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/antimoji/emojify/internal/types"
)

const invisibleClass = "invisible"

var pictureAtom = atom.Lookup([]byte("picture"))

// Scanner splits a text value into literal and replacement spans.
type Scanner interface {
	Scan(text string, custom types.CustomEmojiMap) []types.Span
}

// Walk rewrites every visible text node below root in place and returns
// the number of replacements made. Elements carrying the invisible class are
// left alone together with their descendants.
func Walk(root *html.Node, sc Scanner, custom types.CustomEmojiMap) types.Stats {
	var stats types.Stats
	if root == nil {
		return stats
	}

	// children are snapshotted since splicing rewires the sibling links
	var children []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	for _, child := range children {
		switch child.Type {
		case html.TextNode:
			stats.Merge(replaceText(child, sc, custom))
		case html.ElementNode:
			if hasClass(child, invisibleClass) {
				continue
			}
			stats.Merge(Walk(child, sc, custom))
		case html.DocumentNode:
			stats.Merge(Walk(child, sc, custom))
		}
	}

	return stats
}

func replaceText(text *html.Node, sc Scanner, custom types.CustomEmojiMap) types.Stats {
	spans := sc.Scan(text.Data, custom)
	if unchanged(spans, text.Data) {
		return types.Stats{}
	}

	parent := text.Parent
	for _, span := range spans {
		parent.InsertBefore(buildNode(span), text)
	}
	parent.RemoveChild(text)

	var stats types.Stats
	stats.Count(spans)
	return stats
}

func unchanged(spans []types.Span, original string) bool {
	switch len(spans) {
	case 0:
		return true
	case 1:
		return spans[0].Kind == types.SpanLiteral && spans[0].Text == original
	default:
		return false
	}
}

func buildNode(span types.Span) *html.Node {
	switch node := span.Node.(type) {
	case types.Image:
		return imageNode(node)
	case types.Picture:
		return pictureNode(node)
	default:
		return &html.Node{Type: html.TextNode, Data: span.Text}
	}
}

func imageNode(img types.Image) *html.Node {
	attrs := []html.Attribute{
		{Key: "draggable", Val: "false"},
		{Key: "class", Val: strings.Join(img.Classes, " ")},
		{Key: "alt", Val: img.Alt},
		{Key: "title", Val: img.Title},
		{Key: "src", Val: img.Src},
	}
	for _, extra := range img.Extra {
		attrs = append(attrs, html.Attribute{Key: extra.Key, Val: extra.Val})
	}
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Img,
		Data:     "img",
		Attr:     attrs,
	}
}

func pictureNode(pic types.Picture) *html.Node {
	picture := &html.Node{
		Type:     html.ElementNode,
		DataAtom: pictureAtom,
		Data:     "picture",
	}
	for _, src := range pic.Sources {
		picture.AppendChild(&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Source,
			Data:     "source",
			Attr: []html.Attribute{
				{Key: "media", Val: src.Media},
				{Key: "srcset", Val: src.Srcset},
			},
		})
	}
	picture.AppendChild(imageNode(pic.Fallback))
	return picture
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Namespace != "" || attr.Key != "class" {
			continue
		}
		for _, name := range strings.Fields(attr.Val) {
			if name == class {
				return true
			}
		}
	}
	return false
}
