package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/ports"
	"lms-packages/internal/shared"
	"lms-packages/internal/types"
)

// ExternalCommandFailed prefixes the message of every error caused by a
// process exiting unsuccessfully.
const ExternalCommandFailed = "external command failed"

type ExecRunnerAdapter struct{}

func NewExecRunnerAdapter() ExecRunnerAdapter {
	return ExecRunnerAdapter{}
}

func (a ExecRunnerAdapter) Run(ctx context.Context, cmd types.Command) (types.CommandResult, error) {
	if strings.TrimSpace(cmd.Path) == "" {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command path is empty")
	}
	process := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	process.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		process.Env = append(os.Environ(), cmd.Env...)
	}
	var output bytes.Buffer
	lines := &logLineWriter{command: cmd.Name}
	writer := io.MultiWriter(&output, lines)
	process.Stdout = writer
	process.Stderr = writer

	log.Info().
		Str("command", cmd.Name).
		Str("dir", cmd.Dir).
		Str("exec", cmd.String()).
		Msg("running external command")
	err := process.Run()
	lines.flush()

	result := types.CommandResult{ExitCode: -1, Output: output.Bytes()}
	if process.ProcessState != nil {
		result.ExitCode = process.ProcessState.ExitCode()
	}
	if err != nil {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s: %s (exit code %d)", ExternalCommandFailed, cmd.Name, result.ExitCode)).
			WithCause(shared.CommandError(result.Output, err))
	}
	log.Debug().
		Str("command", cmd.Name).
		Int("exit_code", result.ExitCode).
		Msg("external command finished")
	return result, nil
}

// logLineWriter forwards complete output lines to the debug logger.
type logLineWriter struct {
	command string
	partial []byte
}

func (w *logLineWriter) Write(p []byte) (int, error) {
	w.partial = append(w.partial, p...)
	for {
		idx := bytes.IndexByte(w.partial, '\n')
		if idx < 0 {
			break
		}
		w.emit(string(w.partial[:idx]))
		w.partial = w.partial[idx+1:]
	}
	return len(p), nil
}

func (w *logLineWriter) flush() {
	if len(w.partial) > 0 {
		w.emit(string(w.partial))
		w.partial = nil
	}
}

func (w *logLineWriter) emit(line string) {
	log.Debug().Str("command", w.command).Msg(strings.TrimRight(line, "\r"))
}

var _ ports.CommandRunnerPort = ExecRunnerAdapter{}
