package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileWith(mutate func(*Profile)) Config {
	profile := DefaultProfile()
	mutate(&profile)
	return Config{Profiles: map[string]Profile{"default": profile}}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Profile)
		wantField string
	}{
		{name: "defaults are valid", mutate: func(*Profile) {}},
		{name: "light theme", mutate: func(p *Profile) { p.Theme = "light" }},
		{name: "absolute URL host", mutate: func(p *Profile) { p.AssetHost = "https://cdn.example/assets" }},
		{name: "absolute path host", mutate: func(p *Profile) { p.AssetHost = "/packs" }},
		{name: "zero rate limit disables limiting", mutate: func(p *Profile) { p.RateLimit = 0 }},
		{
			name:      "unknown theme",
			mutate:    func(p *Profile) { p.Theme = "sepia" },
			wantField: "profiles.default.theme",
		},
		{
			name:      "relative asset host",
			mutate:    func(p *Profile) { p.AssetHost = "cdn.example" },
			wantField: "profiles.default.asset_host",
		},
		{
			name:      "protocol relative asset host",
			mutate:    func(p *Profile) { p.AssetHost = "//cdn.example" },
			wantField: "profiles.default.asset_host",
		},
		{
			name:      "asset host with query",
			mutate:    func(p *Profile) { p.AssetHost = "https://cdn.example/?v=1" },
			wantField: "profiles.default.asset_host",
		},
		{
			name:      "ftp asset host",
			mutate:    func(p *Profile) { p.AssetHost = "ftp://cdn.example" },
			wantField: "profiles.default.asset_host",
		},
		{
			name:      "negative rate limit",
			mutate:    func(p *Profile) { p.RateLimit = -1 },
			wantField: "profiles.default.rate_limit",
		},
		{
			name:      "negative body cap",
			mutate:    func(p *Profile) { p.MaxBodyBytes = -1 },
			wantField: "profiles.default.max_body_bytes",
		},
		{
			name:      "negative workers",
			mutate:    func(p *Profile) { p.MaxWorkers = -4 },
			wantField: "profiles.default.max_workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := profileWith(tt.mutate)
			result := ValidateConfig(config)
			if tt.wantField == "" {
				assert.True(t, result.IsOk(), "unexpected error: %v", result.Error())
				return
			}
			require.True(t, result.IsErr())
			assert.Contains(t, result.Error().Error(), tt.wantField)
		})
	}
}

func TestValidator_Warnings(t *testing.T) {
	config := profileWith(func(p *Profile) {
		p.AssetHost = "https://cdn.example/"
		p.RateBurst = 0
	})

	result := NewValidator().Validate(config)

	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())
	warnings := result.Filter(ValidationLevelWarning)
	require.Len(t, warnings, 2)
	assert.Equal(t, "profiles.default.rate_burst", warnings[0].Field)
	assert.Equal(t, "profiles.default.asset_host", warnings[1].Field)
}

func TestValidator_NoProfiles(t *testing.T) {
	result := NewValidator().Validate(Config{})

	assert.True(t, result.HasErrors())
	assert.Contains(t, result.Err().Error(), "no profiles defined")
}

func TestValidationIssue_String(t *testing.T) {
	issue := ValidationIssue{
		Level:      ValidationLevelError,
		Field:      "profiles.default.theme",
		Message:    "unknown theme",
		Suggestion: "use light",
	}

	assert.Equal(t, "[ERROR] profiles.default.theme: unknown theme (use light)", issue.String())
}
