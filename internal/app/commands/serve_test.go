package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/ui"
)

func TestServeHandler_CreateCommand(t *testing.T) {
	cmd := NewServeHandler(logging.NewMockLogger(), ui.NewMockUserOutput()).CreateCommand()

	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("listen"))
}

func TestServeHandler_StopsOnCancel(t *testing.T) {
	out := ui.NewMockUserOutput()
	logger := logging.NewMockLogger()
	root := newRootCommand(t, NewServeHandler(logger, out).CreateCommand())
	root.SetArgs([]string{"serve", "--listen", "127.0.0.1:0"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, root.ExecuteContext(ctx))
	assert.Equal(t, 1, out.CountLevel("INFO"))
	assert.True(t, logger.HasLogWithMessage("shutting down emojify service"))
}

func TestServeHandler_InvalidListenAddress(t *testing.T) {
	root := newRootCommand(t, NewServeHandler(logging.NewMockLogger(), ui.NewMockUserOutput()).CreateCommand())
	root.SetArgs([]string{"serve", "--listen", "not-an-address"})

	err := root.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
