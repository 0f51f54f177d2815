package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newRootCommand mirrors the persistent flags of the application root.
func newRootCommand(t *testing.T, sub *cobra.Command) *cobra.Command {
	t.Helper()
	// keep a developer's own config out of the search path
	t.Setenv("HOME", t.TempDir())

	root := &cobra.Command{Use: "emojify", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("profile", "default", "configuration profile")
	root.AddCommand(sub)
	return root
}

func execute(t *testing.T, root *cobra.Command, stdin string, args ...string) error {
	t.Helper()
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const customEmojiYAML = `- shortcode: blob
  url: https://media.example/blob.gif
  static_url: https://media.example/blob.png
  category: blobs
- shortcode: ":cat:"
  url: https://media.example/cat.png
`
