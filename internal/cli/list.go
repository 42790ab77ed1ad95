package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the current round's submissions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	subs, err := a.service.Submissions(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Format == "json" {
		return formatter.Success(subs)
	}

	w := cmd.OutOrStdout()
	if len(subs) == 0 {
		fmt.Fprintln(w, "No submissions yet.")
		return nil
	}

	rooms := a.service.Rooms()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tNAME\t%s\tSUBMITTED\n", strings.ToUpper(strings.Join(rooms[:], "\t")))
	for i, sub := range subs {
		fmt.Fprintf(tw, "%d\t%s", i+1, sub.Name)
		for _, v := range sub.Values {
			fmt.Fprintf(tw, "\t%.2f", v)
		}
		fmt.Fprintf(tw, "\t%s\n", sub.SubmittedAt.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d of %d submissions received\n", len(subs), fairsplit.N)
	return nil
}
