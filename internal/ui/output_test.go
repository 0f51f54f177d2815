package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestOutput(level OutputLevel, colors bool) (UserOutput, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewUserOutput(&Config{
		Level:        level,
		Writer:       &out,
		ErrorWriter:  &errOut,
		EnableColors: colors,
	}), &out, &errOut
}

func TestUserOutput_StatusMessages(t *testing.T) {
	tests := []struct {
		name     string
		emit     func(UserOutput, context.Context)
		expected string
	}{
		{
			name:     "info",
			emit:     func(u UserOutput, ctx context.Context) { u.Info(ctx, "loaded %d emoji", 3) },
			expected: "INFO: loaded 3 emoji\n",
		},
		{
			name:     "success",
			emit:     func(u UserOutput, ctx context.Context) { u.Success(ctx, "wrote %s", "a.html") },
			expected: "OK: wrote a.html\n",
		},
		{
			name:     "warning",
			emit:     func(u UserOutput, ctx context.Context) { u.Warning(ctx, "skipping binary file") },
			expected: "WARNING: skipping binary file\n",
		},
		{
			name:     "error",
			emit:     func(u UserOutput, ctx context.Context) { u.Error(ctx, "boom") },
			expected: "ERROR: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, out, errOut := newTestOutput(OutputNormal, false)
			tt.emit(output, context.Background())

			assert.Equal(t, tt.expected, errOut.String())
			assert.Empty(t, out.String(), "status messages must not reach the output stream")
		})
	}
}

func TestUserOutput_Levels(t *testing.T) {
	ctx := context.Background()

	t.Run("silent keeps errors and results", func(t *testing.T) {
		output, out, errOut := newTestOutput(OutputSilent, false)
		output.Info(ctx, "hidden")
		output.Warning(ctx, "hidden")
		output.Error(ctx, "shown")
		output.Result(ctx, "%d files", 2)

		assert.Equal(t, "ERROR: shown\n", errOut.String())
		assert.Equal(t, "2 files\n", out.String())
	})

	t.Run("progress needs verbose", func(t *testing.T) {
		output, _, errOut := newTestOutput(OutputNormal, false)
		output.Progress(ctx, "step")
		assert.Empty(t, errOut.String())

		output.SetLevel(OutputVerbose)
		assert.True(t, output.IsLevelEnabled(OutputVerbose))
		output.Progress(ctx, "step")
		assert.Equal(t, "step\n", errOut.String())
	})
}

func TestUserOutput_Raw(t *testing.T) {
	output, out, _ := newTestOutput(OutputSilent, true)

	output.Raw(context.Background(), "<p>100% done</p>")

	assert.Equal(t, "<p>100% done</p>", out.String())
}

func TestUserOutput_Colors(t *testing.T) {
	output, _, errOut := newTestOutput(OutputNormal, true)

	output.Warning(context.Background(), "careful")

	assert.Equal(t, "\033[33mWARNING:\033[0m careful\n", errOut.String())
}

func TestMockUserOutput(t *testing.T) {
	ctx := context.Background()
	mock := NewMockUserOutput()

	mock.Warning(ctx, "skipping %s", "a.bin")
	mock.Raw(ctx, "<p>x</p>")
	mock.Result(ctx, "%d replaced", 4)

	assert.Equal(t, 1, mock.CountLevel("WARNING"))
	assert.Equal(t, "skipping a.bin", mock.GetMessagesOfLevel("WARNING")[0].Text())
	assert.Equal(t, "<p>x</p>4 replaced\n", mock.Output())
	assert.True(t, mock.IsLevelEnabled(OutputNormal))
	assert.False(t, mock.IsLevelEnabled(OutputVerbose))

	mock.Clear()
	assert.Empty(t, mock.GetMessages())
}
