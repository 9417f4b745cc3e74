package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type exportOptions struct {
	Descriptor string
	OutputDir  string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the descriptor and its exported sources into the output directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "descriptor.yaml", "Package descriptor path (.yaml or .hcl)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, opts exportOptions) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Export(ctx, app.ExportRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		OutputDir:      resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d files to %s\n", len(result.Files), result.ExportDir)
	return nil
}
