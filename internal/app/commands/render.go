package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/core/emojify"
	"github.com/antimoji/emojify/internal/core/scanner"
	"github.com/antimoji/emojify/internal/infra/concurrency"
	"github.com/antimoji/emojify/internal/infra/filtering"
	"github.com/antimoji/emojify/internal/infra/fs"
	ctxutil "github.com/antimoji/emojify/internal/observability/context"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/types"
	"github.com/antimoji/emojify/internal/ui"
)

// RenderOptions holds the options for the render command.
type RenderOptions struct {
	Theme        string
	AssetHost    string
	Autoplay     bool
	CustomEmojis string
	Write        bool
	Stats        bool
	Workers      int
	Recursive    bool
	Include      []string
	Exclude      []string
}

// RenderHandler handles the render command.
type RenderHandler struct {
	logger logging.Logger
	ui     ui.UserOutput
}

// renderOutcome is what rendering one input produced.
type renderOutcome struct {
	Input   string
	Content string
	Stats   types.Stats
	Bytes   int
	Changed bool
	Skipped bool
}

// NewRenderHandler creates a new render command handler.
func NewRenderHandler(logger logging.Logger, ui ui.UserOutput) *RenderHandler {
	return &RenderHandler{
		logger: logger,
		ui:     ui,
	}
}

// CreateCommand creates the render cobra command.
func (h *RenderHandler) CreateCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [flags] [file...]",
		Short: "Replace emoji in HTML with image markup",
		Long: `Replace Unicode emoji and :shortcode: custom emoji in HTML fragments with
<img> (or <picture>) markup pointing at emoji image assets.

Text inside elements with the "invisible" class is left untouched. With no
files, or with "-", the fragment is read from standard input.

Examples:
  emojify render post.html                       # Print the rendered fragment
  echo 'Hi 😀' | emojify render                   # Render standard input
  emojify render --theme dark --write a.html     # Rewrite a file in place
  emojify render -r -w --exclude drafts site/    # Rewrite every page under site/
  emojify render --custom-emojis custom.yaml --stats *.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Execute(cmd.Context(), cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme (light, dark, system)")
	cmd.Flags().StringVar(&opts.AssetHost, "asset-host", "", "URL or path prefix for emoji images")
	cmd.Flags().BoolVar(&opts.Autoplay, "autoplay", false, "use animated custom emoji images")
	cmd.Flags().StringVar(&opts.CustomEmojis, "custom-emojis", "", "YAML or JSON file of custom emoji")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "rewrite files in place instead of printing")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "report replacement counts")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "number of concurrent workers (0 = max_workers or CPU count)")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "render files in directories recursively")
	cmd.Flags().StringSliceVar(&opts.Include, "include", nil, "file name globs rendered inside directories (default *.html,*.htm)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "file and directory name globs to skip")

	return cmd
}

// Execute runs the render command.
func (h *RenderHandler) Execute(parentCtx context.Context, cmd *cobra.Command, args []string, opts *RenderOptions) error {
	startTime := time.Now()

	ctx := parentCtx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.WithOperation(ctx, "render")
	ctx = ctxutil.WithComponent(ctx, "cli")

	if len(args) == 0 {
		args = []string{filtering.StdinPath}
	}
	for _, arg := range args {
		if arg == filtering.StdinPath && opts.Write {
			return fmt.Errorf("--write cannot be used with standard input")
		}
	}
	args, err := filtering.DiscoverFiles(args, filtering.DiscoveryOptions{
		Recursive: opts.Recursive,
		Include:   opts.Include,
		Exclude:   opts.Exclude,
	}).Value()
	if err != nil {
		return err
	}

	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		profile.Theme = opts.Theme
	}
	if flags.Changed("asset-host") {
		profile.AssetHost = opts.AssetHost
	}
	if flags.Changed("autoplay") {
		profile.Autoplay = opts.Autoplay
	}
	if flags.Changed("custom-emojis") {
		profile.CustomEmojiFile = opts.CustomEmojis
	}
	if flags.Changed("workers") {
		profile.MaxWorkers = opts.Workers
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	theme, err := types.ParseTheme(profile.Theme)
	if err != nil {
		return err
	}
	cat, policy, err := catalogFor(profile)
	if err != nil {
		return err
	}
	records, err := customEmojisFor(profile.CustomEmojiFile)
	if err != nil {
		return err
	}
	custom := catalog.NewCustomEmojiMap(records)

	engine := emojify.New(scanner.New(cat, policy, scanner.Options{
		AssetHost: profile.AssetHost,
		Theme:     theme,
		Autoplay:  profile.Autoplay,
	}), emojify.WithLogger(h.logger))

	h.logger.Info(ctx, "starting render",
		"inputs", len(args),
		"theme", string(theme),
		"custom_emojis", len(custom),
		"write", opts.Write,
	)

	pool := concurrency.NewWorkerPool(profile.MaxWorkers)
	results := concurrency.Map(ctx, pool, args, func(ctx context.Context, input string) types.Result[renderOutcome] {
		return h.renderInput(ctxutil.WithInput(ctx, input), cmd, engine, custom, input, opts.Write)
	})

	var total types.Stats
	var totalBytes, rendered, failed int
	for i, result := range results {
		outcome, err := result.Value()
		if err != nil {
			failed++
			h.ui.Error(ctx, "%s: %v", displayName(args[i]), err)
			continue
		}
		if outcome.Skipped {
			h.ui.Warning(ctx, "skipping binary file %s", outcome.Input)
			continue
		}

		rendered++
		totalBytes += outcome.Bytes
		total.Merge(outcome.Stats)

		switch {
		case !opts.Write:
			h.ui.Raw(ctx, outcome.Content)
		case outcome.Changed:
			h.ui.Success(ctx, "updated %s (%d replacements)", outcome.Input, outcome.Stats.Total())
		default:
			h.ui.Progress(ctx, "unchanged %s", outcome.Input)
		}
	}

	duration := time.Since(startTime)
	h.logger.Info(ctx, "render completed",
		"rendered", rendered,
		"failed", failed,
		"unicode", total.Unicode,
		"custom", total.Custom,
		"duration", duration.String(),
	)

	if opts.Stats {
		h.ui.Info(ctx, "%d unicode and %d custom emoji replaced in %d %s (%s) in %s",
			total.Unicode, total.Custom, rendered, pluralize(rendered, "input", "inputs"),
			humanize.Bytes(uint64(totalBytes)), duration.Round(time.Millisecond))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

// renderInput renders one file, or standard input for "-".
func (h *RenderHandler) renderInput(ctx context.Context, cmd *cobra.Command, engine *emojify.Engine,
	custom types.CustomEmojiMap, input string, write bool) types.Result[renderOutcome] {
	var data []byte
	if input == filtering.StdinPath {
		read, err := fs.ReadAll(cmd.InOrStdin(), 0).Value()
		if err != nil {
			return types.Err[renderOutcome](fmt.Errorf("failed to read standard input: %w", err))
		}
		data = read
	} else {
		read, err := fs.ReadFile(input).Value()
		if err != nil {
			return types.Err[renderOutcome](err)
		}
		if !fs.LooksLikeText(read) {
			h.logger.Warn(ctx, "skipping binary file")
			return types.Ok(renderOutcome{Input: input, Skipped: true})
		}
		data = read
	}

	original := string(data)
	content, stats := engine.EmojifyWithStats(original, custom)
	outcome := renderOutcome{
		Input:   input,
		Content: content,
		Stats:   stats,
		Bytes:   len(data),
		Changed: content != original,
	}

	if write && outcome.Changed {
		if err := fs.AtomicWriteFile(input, []byte(content), 0o644).Error(); err != nil {
			return types.Err[renderOutcome](fmt.Errorf("failed to write: %w", err))
		}
	}

	h.logger.Debug(ctx, "rendered input", "unicode", stats.Unicode, "custom", stats.Custom, "bytes", len(data))
	return types.Ok(outcome)
}

func displayName(input string) string {
	if input == filtering.StdinPath {
		return "standard input"
	}
	return input
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
