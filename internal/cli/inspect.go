package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type inspectOptions struct {
	Name string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List packages in the local registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Only list packages with this name")
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	defer service.Close()
	result, err := service.Inspect(ctx, app.InspectRequest{Name: opts.Name})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "packages: %d\n", len(result.Records))
	for _, record := range result.Records {
		fmt.Fprintf(out, "- %s %s (%s %s %s %s)\n",
			record.Reference.String(),
			record.PackageID,
			record.Settings.OS,
			record.Settings.Compiler,
			record.Settings.BuildType,
			record.Settings.Arch,
		)
		fmt.Fprintf(out, "  %s\n", record.PackageDir)
	}
	return nil
}
