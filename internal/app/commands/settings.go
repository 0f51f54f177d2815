// Package commands implements the emojify subcommands on injected dependencies.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antimoji/emojify/internal/config"
	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/core/theme"
	"github.com/antimoji/emojify/internal/types"
)

// resolveProfile loads the profile named by the root --profile flag from the
// file named by --config (or the search path), applies EMOJIFY_* overrides
// and validates the result. Command flags are applied by the caller.
func resolveProfile(cmd *cobra.Command) (config.Profile, error) {
	configFile, _ := cmd.Root().PersistentFlags().GetString("config")
	profileName, _ := cmd.Root().PersistentFlags().GetString("profile")

	configResult := config.Discover(configFile)
	if configResult.IsErr() {
		return config.Profile{}, fmt.Errorf("failed to load config: %w", configResult.Error())
	}

	profileResult := config.GetProfile(configResult.Unwrap(), profileName)
	if profileResult.IsErr() {
		return config.Profile{}, profileResult.Error()
	}

	profile := config.ApplyEnv(profileResult.Unwrap())
	return profile, nil
}

// validateProfile checks the final settings after flag overrides.
func validateProfile(profile config.Profile) error {
	validated := config.ValidateConfig(config.Config{
		Profiles: map[string]config.Profile{"active": profile},
	})
	if validated.IsErr() {
		return fmt.Errorf("invalid configuration: %w", validated.Error())
	}
	return nil
}

// catalogFor returns the Unicode catalog and variant policy for profile.
// Without a catalog file the shared built-in instances are used.
func catalogFor(profile config.Profile) (*catalog.Unicode, *theme.Policy, error) {
	if profile.CatalogFile == "" {
		return catalog.Default(), theme.Default(), nil
	}

	records, err := catalog.LoadUnicodeRecords(profile.CatalogFile).Value()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	cat := catalog.WithSupplement(catalog.Default(), records)
	return cat, theme.NewPolicy(cat), nil
}

// customEmojisFor loads the custom emoji records named by path, or none.
func customEmojisFor(path string) ([]types.CustomEmoji, error) {
	if path == "" {
		return nil, nil
	}
	records, err := catalog.LoadCustomEmojis(path).Value()
	if err != nil {
		return nil, fmt.Errorf("failed to load custom emojis: %w", err)
	}
	return records, nil
}
