package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// shortIDLen is how much of a split ID the text listing shows.
const shortIDLen = 12

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "history",
		Short:         "List recorded splits",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	a, err := openApp(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	splits, err := a.service.History(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Format == "json" {
		return formatter.Success(splits)
	}

	w := cmd.OutOrStdout()
	if len(splits) == 0 {
		fmt.Fprintln(w, "No splits recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SPLIT\tMETHOD\tPEOPLE\tRENTS\tCOMPUTED")
	for _, s := range splits {
		rents := make([]string, len(s.Names))
		for i := range s.Names {
			rents[i] = fmt.Sprintf("%.2f", s.Solution.Rent(i))
		}
		id := s.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			id,
			s.Solution.Method,
			strings.Join(s.Names[:], ", "),
			strings.Join(rents, ", "),
			s.ComputedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.Flush()
}
