package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antimoji/emojify/internal/core/catalog"
	ctxutil "github.com/antimoji/emojify/internal/observability/context"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/types"
	"github.com/antimoji/emojify/internal/ui"
)

// PickerOptions holds the options for the picker command.
type PickerOptions struct {
	CustomEmojis string
	Autoplay     bool
}

// PickerDocument is the JSON document printed by the picker command.
type PickerDocument struct {
	Emojis     []types.PickerEmoji `json:"emojis"`
	Categories []string            `json:"categories"`
}

// PickerHandler handles the picker command.
type PickerHandler struct {
	logger logging.Logger
	ui     ui.UserOutput
}

// NewPickerHandler creates a new picker command handler.
func NewPickerHandler(logger logging.Logger, ui ui.UserOutput) *PickerHandler {
	return &PickerHandler{
		logger: logger,
		ui:     ui,
	}
}

// CreateCommand creates the picker cobra command.
func (h *PickerHandler) CreateCommand() *cobra.Command {
	opts := &PickerOptions{}

	cmd := &cobra.Command{
		Use:   "picker [flags]",
		Short: "Print emoji picker data for custom emoji",
		Long: `Convert a custom emoji file into the entries and category list an emoji
picker needs, printed as JSON.

Examples:
  emojify picker --custom-emojis custom.yaml
  emojify picker --custom-emojis custom.json --autoplay`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Execute(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.CustomEmojis, "custom-emojis", "", "YAML or JSON file of custom emoji")
	cmd.Flags().BoolVar(&opts.Autoplay, "autoplay", false, "use animated images in picker entries")

	return cmd
}

// Execute runs the picker command.
func (h *PickerHandler) Execute(parentCtx context.Context, cmd *cobra.Command, opts *PickerOptions) error {
	ctx := parentCtx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.WithOperation(ctx, "picker")
	ctx = ctxutil.WithComponent(ctx, "cli")

	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("custom-emojis") {
		profile.CustomEmojiFile = opts.CustomEmojis
	}
	if cmd.Flags().Changed("autoplay") {
		profile.Autoplay = opts.Autoplay
	}
	if profile.CustomEmojiFile == "" {
		return fmt.Errorf("no custom emoji file: pass --custom-emojis or set custom_emoji_file")
	}

	records, err := customEmojisFor(profile.CustomEmojiFile)
	if err != nil {
		return err
	}

	doc := PickerDocument{
		Emojis:     catalog.BuildPickerEmojis(records, profile.Autoplay),
		Categories: catalog.CategoriesFromEmojis(records),
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode picker data: %w", err)
	}

	h.logger.Info(ctx, "picker data generated",
		"emojis", len(doc.Emojis),
		"categories", len(doc.Categories),
	)
	h.ui.Raw(ctx, string(out)+"\n")
	return nil
}
