package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name/version@user/channel>",
		Short: "Remove a package reference from the local registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), cmd, args[0])
		},
	}
}

func runRemove(ctx context.Context, cmd *cobra.Command, reference string) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Remove(ctx, app.RemoveRequest{Reference: reference})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d package(s) for %s\n", result.Removed, result.Reference.String())
	return nil
}
