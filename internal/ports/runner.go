package ports

import (
	"context"

	"lms-packages/internal/types"
)

// CommandRunnerPort executes external processes. A non-zero exit status is
// reported as an error carrying the captured output; the result is still
// returned so callers can inspect the exit code.
type CommandRunnerPort interface {
	Run(ctx context.Context, cmd types.Command) (types.CommandResult, error)
}
