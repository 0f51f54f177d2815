// Package catalog holds the Unicode and custom emoji lookup tables the scanner matches against.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/antimoji/emojify/internal/core/trie"
	"github.com/antimoji/emojify/internal/types"
)

const (
	zeroWidthJoiner = '\u200d'
	emojiSelector   = '\ufe0f'
)

// Unicode is an immutable table of Unicode emoji records with its prefix index.
type Unicode struct {
	records map[string]types.UnicodeEmojiRecord
	index   *trie.Trie
}

// New builds a catalog from records. A later record replaces an earlier one
// with the same key; records with an empty key are ignored.
func New(records []types.UnicodeEmojiRecord) *Unicode {
	table := make(map[string]types.UnicodeEmojiRecord, len(records))
	for _, record := range records {
		if record.Key == "" {
			continue
		}
		table[record.Key] = record
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}

	return &Unicode{
		records: table,
		index:   trie.New(keys),
	}
}

// WithSupplement returns a new catalog containing base overlaid with extra.
func WithSupplement(base *Unicode, extra []types.UnicodeEmojiRecord) *Unicode {
	if len(extra) == 0 {
		return base
	}
	merged := make([]types.UnicodeEmojiRecord, 0, base.Len()+len(extra))
	merged = append(merged, base.Records()...)
	merged = append(merged, extra...)
	return New(merged)
}

// Lookup returns the record registered for key.
func (u *Unicode) Lookup(key string) (types.UnicodeEmojiRecord, bool) {
	record, ok := u.records[key]
	return record, ok
}

// Search returns the longest registered key that prefixes text.
func (u *Unicode) Search(text string) (string, bool) {
	return u.index.Search(text)
}

// Len returns the number of registered keys.
func (u *Unicode) Len() int {
	return len(u.records)
}

// Records returns all records sorted by key.
func (u *Unicode) Records() []types.UnicodeEmojiRecord {
	records := make([]types.UnicodeEmojiRecord, 0, len(u.records))
	for _, record := range u.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key < records[j].Key
	})
	return records
}

// Filenames maps emoji keys to their image filenames. Keys that are not
// registered or have no filename are skipped.
func (u *Unicode) Filenames(keys ...string) []string {
	filenames := make([]string, 0, len(keys))
	for _, key := range keys {
		record, ok := u.records[key]
		if !ok || !record.HasFilename() {
			continue
		}
		filenames = append(filenames, record.Filename)
	}
	return filenames
}

// Filename derives the image filename of an emoji sequence: lowercase hex
// codepoints joined by "-". U+FE0F is dropped unless the sequence contains a
// zero-width joiner.
func Filename(sequence string) string {
	keepSelector := strings.ContainsRune(sequence, zeroWidthJoiner)

	parts := make([]string, 0, len(sequence)/2)
	for _, r := range sequence {
		if r == emojiSelector && !keepSelector {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}
