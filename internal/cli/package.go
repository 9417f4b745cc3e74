package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type packageOptions struct {
	Descriptor string
	BuildDir   string
	OutputDir  string
}

func newPackageCommand() *cobra.Command {
	opts := packageOptions{}
	cmd := &cobra.Command{
		Use:   "package",
		Short: "Copy build artifacts into the package layout and write its manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackage(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "descriptor.yaml", "Package descriptor path (.yaml or .hcl)")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "build", "Build directory holding the artifacts")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory for package and metadata")
	return cmd
}

func runPackage(ctx context.Context, cmd *cobra.Command, opts packageOptions) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Package(ctx, app.PackageRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		BuildDir:       resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		OutputDir:      resolveString(cmd, opts.OutputDir, "output", "output"),
		Settings:       resolveSettings(),
	})
	if err != nil {
		return err
	}
	printPackage(cmd, result)
	return nil
}

func printPackage(cmd *cobra.Command, result app.PackageResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "package id: %s\n", result.PackageID)
	fmt.Fprintf(out, "package directory: %s\n", result.PackageDir)
	for _, file := range result.Files {
		fmt.Fprintf(out, "- %s (%d bytes)\n", file.Path, file.Size)
	}
}
