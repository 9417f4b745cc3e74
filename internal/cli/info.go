package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"lms-packages/internal/app"
)

type infoOptions struct {
	Descriptor string
	Query      string
}

func newInfoCommand() *cobra.Command {
	opts := infoOptions{}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print a validated descriptor as JSON, optionally filtered by a JSONPath query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Descriptor, "descriptor", "descriptor.yaml", "Package descriptor path (.yaml or .hcl)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "JSONPath expression, e.g. $.requires[*]")
	return cmd
}

func runInfo(ctx context.Context, cmd *cobra.Command, opts infoOptions) error {
	service := newAppService()
	defer service.Close()
	query := resolveString(cmd, opts.Query, "query", "query")
	result, err := service.Info(ctx, app.InfoRequest{
		DescriptorPath: resolveString(cmd, opts.Descriptor, "descriptor", "descriptor"),
		Query:          query,
	})
	if err != nil {
		return err
	}
	var document any = result.Descriptor
	if query != "" {
		document = result.Matches
	}
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode descriptor").
			WithCause(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
