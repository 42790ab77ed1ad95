package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "reset",
		Short:         "Clear the current round's submissions",
		Long:          "Delete every submission so a new round can start. Split history is kept.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(rootOpts, cmd)
		},
	}
}

func runReset(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	n, err := a.service.Reset(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]int64{"cleared": n})
	}
	return formatter.Success(fmt.Sprintf("Cleared %d submission(s)", n))
}
