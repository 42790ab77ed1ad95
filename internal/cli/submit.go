package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <name> <v1,v2,v3>",
		Short: "Submit one person's room valuations",
		Long: `Add a person's valuations to the current round.

Values are dollar amounts, one per room in room order, and must sum to the
configured total rent. Each person may submit once per round and a round
holds three submissions.

Example:
  rent submit Alice 800,700,880`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

type submitResult struct {
	Name     string    `json:"name"`
	Values   []float64 `json:"values"`
	Received int       `json:"received"`
	Needed   int       `json:"needed"`
	Message  string    `json:"message"`
}

func runSubmit(opts *RootOptions, name, rawValues string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	values, err := parseValues(rawValues)
	if err != nil {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "invalid values", err))
	}

	a, err := openApp(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	ctx := cmd.Context()
	sub, err := a.service.Submit(ctx, name, values)
	if err != nil {
		return formatter.Fail(err)
	}
	subs, err := a.service.Submissions(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	result := submitResult{
		Name:     sub.Name,
		Values:   sub.Values[:],
		Received: len(subs),
		Needed:   fairsplit.N,
		Message:  fmt.Sprintf("Valuations submitted for %s (%d/%d)", sub.Name, len(subs), fairsplit.N),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.Message)
}
