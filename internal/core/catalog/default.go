package catalog

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"

	"github.com/antimoji/emojify/internal/types"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Unicode
)

// Default returns the process-wide catalog built from the bundled emoji code
// map. It is built on first use and never modified afterwards.
func Default() *Unicode {
	defaultOnce.Do(func() {
		defaultCatalog = New(BuiltinRecords())
	})
	return defaultCatalog
}

// BuiltinRecords derives Unicode records from the kyokomi emoji code map.
// Every sequence is registered both with and without U+FE0F so that either
// presentation form matches the same image.
func BuiltinRecords() []types.UnicodeEmojiRecord {
	direct := make(map[string]types.UnicodeEmojiRecord)
	for code, aliases := range emoji.RevCodeMap() {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		direct[code] = types.UnicodeEmojiRecord{
			Key:       code,
			Filename:  Filename(code),
			ShortCode: primaryShortCode(aliases),
		}
	}

	codes := make([]string, 0, len(direct))
	for code := range direct {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	records := make([]types.UnicodeEmojiRecord, 0, len(direct)*2)
	variants := make(map[string]types.UnicodeEmojiRecord)
	for _, code := range codes {
		record := direct[code]
		records = append(records, record)

		for _, variant := range presentationVariants(code) {
			if _, exists := direct[variant]; exists {
				continue
			}
			if _, exists := variants[variant]; exists {
				continue
			}
			alias := record
			alias.Key = variant
			variants[variant] = alias
		}
	}
	for _, record := range variants {
		records = append(records, record)
	}

	return records
}

// presentationVariants returns the alternate spellings of code: without
// U+FE0F when it has one, or with a trailing U+FE0F for lone codepoints.
func presentationVariants(code string) []string {
	if strings.ContainsRune(code, emojiSelector) {
		return []string{strings.ReplaceAll(code, string(emojiSelector), "")}
	}
	if utf8.RuneCountInString(code) == 1 {
		return []string{code + string(emojiSelector)}
	}
	return nil
}

func primaryShortCode(aliases []string) string {
	for _, alias := range aliases {
		if name := strings.Trim(alias, ":"); name != "" {
			return name
		}
	}
	return ""
}
