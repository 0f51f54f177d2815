package catalog

import (
	"sort"
	"strings"

	"github.com/antimoji/emojify/internal/types"
)

const defaultCategory = "custom"

// BuildPickerEmojis converts custom emoji records into picker entries.
func BuildPickerEmojis(records []types.CustomEmoji, autoplay bool) []types.PickerEmoji {
	entries := make([]types.PickerEmoji, 0, len(records))
	for _, record := range records {
		name := strings.Trim(record.Shortcode, ":")
		imageURL := record.StaticURL
		if autoplay || imageURL == "" {
			imageURL = record.URL
		}

		entries = append(entries, types.PickerEmoji{
			ID:             name,
			Name:           name,
			ShortNames:     []string{name},
			Text:           "",
			Emoticons:      []string{},
			Keywords:       []string{name},
			ImageURL:       imageURL,
			Custom:         true,
			CustomCategory: record.Category,
		})
	}
	return entries
}

// CategoriesFromEmojis returns the sorted, deduplicated picker category labels
// for records. The default "custom" label is always present.
func CategoriesFromEmojis(records []types.CustomEmoji) []string {
	seen := map[string]struct{}{defaultCategory: {}}
	for _, record := range records {
		label := defaultCategory
		if record.HasCategory() {
			label = defaultCategory + "-" + record.Category
		}
		seen[label] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for label := range seen {
		categories = append(categories, label)
	}
	sort.Strings(categories)
	return categories
}
