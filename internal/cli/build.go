package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type buildOptions struct {
	Descriptor string
	SourceDir  string
	BuildDir   string
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate build files and run the configure and build commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "descriptor.yaml", "Package descriptor path (.yaml or .hcl)")
	cmd.Flags().StringVar(&opts.SourceDir, "source-dir", "", "Source directory (defaults to the descriptor directory)")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "build", "Build directory")
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Build(ctx, app.BuildRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		SourceDir:      resolveString(cmd, opts.SourceDir, "source_dir", "source-dir"),
		BuildDir:       resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		Settings:       resolveSettings(),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, command := range result.Commands {
		fmt.Fprintf(out, "%s: %s\n", command.Name, command.String())
	}
	fmt.Fprintf(out, "build directory: %s\n", result.BuildDir)
	return nil
}
