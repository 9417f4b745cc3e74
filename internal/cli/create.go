package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type createOptions struct {
	Descriptor  string
	OutputDir   string
	UserChannel string
}

func newCreateCommand() *cobra.Command {
	opts := createOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Export, build, package and register a descriptor in one run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "descriptor.yaml", "Package descriptor path (.yaml or .hcl)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory (defaults to the cache data directory)")
	cmd.Flags().StringVar(&opts.UserChannel, "user-channel", "", "Reference qualifier as user/channel, e.g. lms/stable")
	return cmd
}

func runCreate(ctx context.Context, cmd *cobra.Command, opts createOptions) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Create(ctx, app.CreateRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		OutputDir:      resolveString(cmd, opts.OutputDir, "output", "output"),
		UserChannel:    resolveString(cmd, opts.UserChannel, "user_channel", "user-channel"),
		Settings:       resolveSettings(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", result.Reference.String())
	printPackage(cmd, result.Package)
	return nil
}
