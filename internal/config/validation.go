package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/antimoji/emojify/internal/types"
)

// ValidationLevel defines the severity of validation issues.
type ValidationLevel string

const (
	ValidationLevelError   ValidationLevel = "error"
	ValidationLevelWarning ValidationLevel = "warning"
)

// ValidationIssue represents a configuration problem with a suggested fix.
type ValidationIssue struct {
	Level      ValidationLevel `json:"level"`
	Field      string          `json:"field"`
	Value      any             `json:"value,omitempty"`
	Message    string          `json:"message"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// String returns a human-readable representation of the validation issue.
func (vi ValidationIssue) String() string {
	result := fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(vi.Level)), vi.Field, vi.Message)
	if vi.Suggestion != "" {
		result += fmt.Sprintf(" (%s)", vi.Suggestion)
	}
	return result
}

// ValidationResult collects the issues found in a configuration.
type ValidationResult struct {
	Issues []ValidationIssue `json:"issues"`
}

// HasErrors checks if there are any error-level issues.
func (vr ValidationResult) HasErrors() bool {
	return len(vr.Filter(ValidationLevelError)) > 0
}

// Filter returns the issues of the given level.
func (vr ValidationResult) Filter(level ValidationLevel) []ValidationIssue {
	var issues []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Level == level {
			issues = append(issues, issue)
		}
	}
	return issues
}

// Err joins all error-level issues into one error, or returns nil.
func (vr ValidationResult) Err() error {
	var errs []error
	for _, issue := range vr.Filter(ValidationLevelError) {
		errs = append(errs, errors.New(issue.String()))
	}
	return errors.Join(errs...)
}

// Validator checks profiles for invalid and suspicious settings.
type Validator struct {
	issues []ValidationIssue
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every profile of config. Profiles are visited in name order
// so the issue list is stable.
func (cv *Validator) Validate(config Config) ValidationResult {
	cv.issues = nil

	if len(config.Profiles) == 0 {
		cv.addError("profiles", nil, "no profiles defined", "add a \"default\" profile")
	}

	names := make([]string, 0, len(config.Profiles))
	for name := range config.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cv.validateProfile("profiles."+name, config.Profiles[name])
	}

	return ValidationResult{Issues: cv.issues}
}

func (cv *Validator) validateProfile(prefix string, profile Profile) {
	if _, err := types.ParseTheme(profile.Theme); err != nil {
		cv.addError(prefix+".theme", profile.Theme, err.Error(), "use light, dark or system")
	}

	if msg := assetHostProblem(profile.AssetHost); msg != "" {
		cv.addError(prefix+".asset_host", profile.AssetHost, msg,
			"use an absolute URL such as https://cdn.example or an absolute path such as /packs")
	}

	numbers := []struct {
		field string
		value float64
	}{
		{"rate_limit", profile.RateLimit},
		{"rate_burst", float64(profile.RateBurst)},
		{"max_body_bytes", float64(profile.MaxBodyBytes)},
		{"max_workers", float64(profile.MaxWorkers)},
	}
	for _, n := range numbers {
		if n.value < 0 {
			cv.addError(prefix+"."+n.field, n.value, "cannot be negative", "use 0 or a positive value")
		}
	}

	if profile.RateLimit > 0 && profile.RateBurst == 0 {
		cv.addWarning(prefix+".rate_burst", profile.RateBurst,
			"a zero burst rejects every request while rate limiting is on",
			"set rate_burst to at least 1 or rate_limit to 0")
	}
	if strings.HasSuffix(profile.AssetHost, "/") {
		cv.addWarning(prefix+".asset_host", profile.AssetHost,
			"trailing slash is ignored", "drop the trailing slash")
	}
	if profile.ListenAddr == "" {
		cv.addWarning(prefix+".listen_addr", profile.ListenAddr,
			"empty listen address binds every interface on port 80", "set listen_addr such as :8080")
	}
}

// assetHostProblem describes why host cannot prefix image URLs, or returns "".
func assetHostProblem(host string) string {
	if host == "" {
		return ""
	}
	if strings.HasPrefix(host, "/") && !strings.HasPrefix(host, "//") {
		return ""
	}

	u, err := url.Parse(host)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must be an http(s) URL or an absolute path"
	}
	if u.Host == "" {
		return "URL has no host"
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "URL must not carry a query or fragment"
	}
	return ""
}

func (cv *Validator) addError(field string, value any, message, suggestion string) {
	cv.add(ValidationLevelError, field, value, message, suggestion)
}

func (cv *Validator) addWarning(field string, value any, message, suggestion string) {
	cv.add(ValidationLevelWarning, field, value, message, suggestion)
}

func (cv *Validator) add(level ValidationLevel, field string, value any, message, suggestion string) {
	cv.issues = append(cv.issues, ValidationIssue{
		Level:      level,
		Field:      field,
		Value:      value,
		Message:    message,
		Suggestion: suggestion,
	})
}

// ValidateConfig validates the configuration for correctness. Warnings do
// not fail validation; use a Validator to inspect them.
func ValidateConfig(config Config) types.Result[Config] {
	if err := NewValidator().Validate(config).Err(); err != nil {
		return types.Err[Config](err)
	}
	return types.Ok(config)
}
