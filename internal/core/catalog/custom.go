package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/antimoji/emojify/internal/types"
)

// NewCustomEmojiMap builds the per-call lookup table keyed by ":shortcode:".
// Shortcodes are accepted with or without their delimiting colons. A missing
// static URL falls back to the animated one.
func NewCustomEmojiMap(records []types.CustomEmoji) types.CustomEmojiMap {
	table := make(types.CustomEmojiMap, len(records))
	for _, record := range records {
		key := NormalizeShortcode(record.Shortcode)
		if key == "" {
			continue
		}
		if record.StaticURL == "" {
			record.StaticURL = record.URL
		}
		table[key] = record
	}
	return table
}

// NormalizeShortcode returns shortcode wrapped in exactly one pair of colons,
// or "" when nothing remains between them.
func NormalizeShortcode(shortcode string) string {
	name := strings.Trim(strings.TrimSpace(shortcode), ":")
	if name == "" {
		return ""
	}
	return ":" + name + ":"
}

// DecodeCustomEmojis reads a list of custom emoji records in YAML or JSON.
// An empty document yields an empty list.
func DecodeCustomEmojis(r io.Reader) ([]types.CustomEmoji, error) {
	var records []types.CustomEmoji
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []types.CustomEmoji{}, nil
		}
		return nil, fmt.Errorf("failed to decode custom emojis: %w", err)
	}

	if err := ValidateCustomEmojis(records); err != nil {
		return nil, err
	}
	return records, nil
}

// ValidateCustomEmojis checks that every record has a URL and a shortcode
// that can be matched in text, which rules out colons inside the name.
func ValidateCustomEmojis(records []types.CustomEmoji) error {
	for i, record := range records {
		shortcode := NormalizeShortcode(record.Shortcode)
		if shortcode == "" {
			return fmt.Errorf("custom emoji %d: shortcode is required", i)
		}
		if strings.Contains(shortcode[1:len(shortcode)-1], ":") {
			return fmt.Errorf("custom emoji %s: shortcode must not contain a colon", record.Shortcode)
		}
		if record.URL == "" {
			return fmt.Errorf("custom emoji %s: url is required", record.Shortcode)
		}
	}
	return nil
}

// LoadCustomEmojis reads custom emoji records from a YAML or JSON file.
func LoadCustomEmojis(path string) types.Result[[]types.CustomEmoji] {
	file, err := os.Open(path) // #nosec G304 - path comes from trusted configuration
	if err != nil {
		return types.Err[[]types.CustomEmoji](err)
	}
	defer func() {
		_ = file.Close()
	}()

	return types.TryFrom(DecodeCustomEmojis(file))
}

// LoadUnicodeRecords reads supplementary Unicode records from a YAML or JSON
// file. Records without a filename block rendering of their key.
func LoadUnicodeRecords(path string) types.Result[[]types.UnicodeEmojiRecord] {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from trusted configuration
	if err != nil {
		return types.Err[[]types.UnicodeEmojiRecord](err)
	}

	var records []types.UnicodeEmojiRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return types.Err[[]types.UnicodeEmojiRecord](fmt.Errorf("failed to decode catalog %s: %w", path, err))
	}

	for i, record := range records {
		if record.Key == "" {
			return types.Err[[]types.UnicodeEmojiRecord](fmt.Errorf("catalog %s: record %d has no key", path, i))
		}
	}

	return types.Ok(records)
}
