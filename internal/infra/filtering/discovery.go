// Package filtering expands command-line paths into the files to render.
package filtering

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/antimoji/emojify/internal/types"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// DefaultIncludePatterns are the base-name globs rendered when walking a directory.
var DefaultIncludePatterns = []string{"*.html", "*.htm"}

// DiscoveryOptions holds options for file discovery.
type DiscoveryOptions struct {
	Recursive bool
	// Include and Exclude are base-name globs; Include only applies inside
	// directories, Exclude also prunes directories.
	Include []string
	Exclude []string
}

// DiscoverFiles expands args into input paths. Files and StdinPath pass
// through as given, and so do missing paths so they surface as failed
// inputs. Directories are walked when Recursive is set.
func DiscoverFiles(args []string, opts DiscoveryOptions) types.Result[[]string] {
	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return types.Err[[]string](err)
	}
	include := opts.Include
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}

	var paths []string
	for _, arg := range args {
		if arg == StdinPath {
			paths = append(paths, arg)
			continue
		}

		stat, err := os.Stat(arg)
		if err != nil || !stat.IsDir() {
			paths = append(paths, arg)
			continue
		}
		if !opts.Recursive {
			return types.Err[[]string](fmt.Errorf("%s is a directory (use --recursive)", arg))
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != arg && (strings.HasPrefix(name, ".") || matchAny(opts.Exclude, name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && matchAny(include, name) && !matchAny(opts.Exclude, name) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return types.Err[[]string](fmt.Errorf("failed to walk %s: %w", arg, err))
		}
	}

	return types.Ok(paths)
}

func validatePatterns(patternSets ...[]string) error {
	for _, patterns := range patternSets {
		for _, pattern := range patterns {
			if _, err := filepath.Match(pattern, ""); err != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
		}
	}
	return nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
