package adapters

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-packages/internal/types"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	result, err := NewExecRunnerAdapter().Run(t.Context(), types.Command{
		Name: "configure",
		Path: "sh",
		Args: []string{"-c", "pwd; echo to-stderr 1>&2"},
		Dir:  dir,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, string(result.Output), "to-stderr")
	assert.NotEmpty(t, strings.TrimSpace(string(result.Output)))
}

func TestExecRunnerReportsNonZeroExit(t *testing.T) {
	skipWithoutShell(t)
	result, err := NewExecRunnerAdapter().Run(t.Context(), types.Command{
		Name: "build",
		Path: "sh",
		Args: []string{"-c", "echo compile error; exit 3"},
	})
	require.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	var builder *errbuilder.ErrBuilder
	require.True(t, errors.As(err, &builder))
	assert.True(t, strings.HasPrefix(builder.Msg, ExternalCommandFailed))
	assert.Contains(t, string(result.Output), "compile error")
}

func TestExecRunnerPassesEnv(t *testing.T) {
	skipWithoutShell(t)
	result, err := NewExecRunnerAdapter().Run(t.Context(), types.Command{
		Name: "env",
		Path: "sh",
		Args: []string{"-c", "printf %s \"$LMS_TEST_VALUE\""},
		Env:  []string{"LMS_TEST_VALUE=camera"},
	})
	require.NoError(t, err)
	assert.Equal(t, "camera", string(result.Output))
}

func TestExecRunnerRejectsEmptyPath(t *testing.T) {
	_, err := NewExecRunnerAdapter().Run(t.Context(), types.Command{Name: "noop"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLogLineWriterSplitsLines(t *testing.T) {
	w := &logLineWriter{command: "test"}
	n, err := w.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "tw", string(w.partial))
	_, _ = w.Write([]byte("o\n"))
	assert.Empty(t, w.partial)
	_, _ = w.Write([]byte("tail"))
	w.flush()
	assert.Nil(t, w.partial)
}
