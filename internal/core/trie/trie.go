// Package trie provides an immutable codepoint trie answering longest-prefix queries.
package trie

import "unicode/utf8"

type node struct {
	children map[rune]*node
	terminal bool
}

// Trie indexes a fixed set of keys. It is read-only after New returns and
// safe for concurrent use.
type Trie struct {
	root *node
	size int
}

// New builds a trie from keys. Empty keys are ignored, duplicates count once.
func New(keys []string) *Trie {
	t := &Trie{root: &node{}}
	for _, key := range keys {
		t.insert(key)
	}
	return t
}

func (t *Trie) insert(key string) {
	if key == "" {
		return
	}
	current := t.root
	for _, r := range key {
		if current.children == nil {
			current.children = make(map[rune]*node)
		}
		next, ok := current.children[r]
		if !ok {
			next = &node{}
			current.children[r] = next
		}
		current = next
	}
	if !current.terminal {
		current.terminal = true
		t.size++
	}
}

// Len returns the number of distinct keys.
func (t *Trie) Len() int {
	return t.size
}

// Search returns the longest key that is a prefix of text.
func (t *Trie) Search(text string) (string, bool) {
	current := t.root
	matched := 0
	found := false

	for offset := 0; offset < len(text); {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		next, ok := current.children[r]
		if !ok {
			break
		}
		offset += size
		current = next
		if current.terminal {
			matched = offset
			found = true
		}
	}

	if !found {
		return "", false
	}
	return text[:matched], true
}
