package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zedonkay/rent/internal/canonical"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/round"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	People    []string
	TotalRent float64 // 0 uses the configured rent
	Policy    string  // empty uses the configured policy
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute a split without touching the database",
		Long: `Compute a split for three people given on the command line.

People are listed in order with --person name=v1,v2,v3, one value per room.
Nothing is stored.

Examples:
  rent solve --person Alice=800,700,880 --person Bob=700,880,800 --person Carol=880,800,700
  rent solve --rent 3000 --policy minimum-envy --person ... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.People, "person", "p", nil, "person as name=v1,v2,v3 (repeat 3 times)")
	cmd.Flags().Float64Var(&opts.TotalRent, "rent", 0, "total rent (default from config)")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "fallback policy: sequential or minimum-envy (default from config)")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if len(opts.People) != fairsplit.N {
		return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs,
			fmt.Sprintf("need exactly %d --person flags, got %d", fairsplit.N, len(opts.People)), nil))
	}

	var names [fairsplit.N]string
	rows := make([][]float64, fairsplit.N)
	for i, p := range opts.People {
		name, values, err := parsePerson(p)
		if err != nil {
			return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "invalid --person", err))
		}
		names[i] = name
		rows[i] = values
	}

	a, err := newApp(opts.RootOptions)
	if err != nil {
		return formatter.Fail(err)
	}
	defer a.Close()

	engine := a.engine
	if opts.Policy != "" {
		policy, err := fairsplit.PolicyByName(opts.Policy)
		if err != nil {
			return formatter.Fail(codedExitError(ExitCommandError, ErrCodeBadArgs, "invalid --policy", err))
		}
		engine = a.newEngine(policy)
	}

	totalRent := a.cfg.TotalRent
	if opts.TotalRent != 0 {
		totalRent = opts.TotalRent
	}

	v, err := fairsplit.NewValuations(rows)
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Solving for %v with total rent %.2f using %s fallback", names, totalRent, engine.Policy().Name())

	sol, err := engine.Compute(v, totalRent)
	if err != nil {
		return formatter.Fail(err)
	}

	splitID, err := canonical.SplitID(v, totalRent, sol)
	if err != nil {
		return formatter.Fail(err)
	}
	result := round.NewResult(splitID, names, a.cfg.RoomLabels(), v, totalRent, sol)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	writeResult(cmd.OutOrStdout(), result)
	return nil
}
