// Command rent splits a shared rent among three housemates.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zedonkay/rent/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands print their own formatted errors. Anything else (flag
		// parsing, argument counts) is printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.ErrCode == "" {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
