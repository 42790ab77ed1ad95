package cli

import (
	"github.com/spf13/cobra"
)

// NewCalculateCommand creates the calculate command.
func NewCalculateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calculate",
		Short: "Compute the split for the current round",
		Long: `Run the fair-division engine over the round's three submissions.

People are taken in submission order. The split is recorded in the history;
calculating the same round twice records it once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(rootOpts, cmd)
		},
	}
}

func runCalculate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	result, err := a.service.Calculate(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	writeResult(cmd.OutOrStdout(), result)
	return nil
}
