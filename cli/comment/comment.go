package comment

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	commentCommand := &cobra.Command{
		Use:   "comment",
		Short: "Commands for searching stored comments",
		Example: "  # Finds comments mentioning 'Rayleigh'\n" +
			"  " + os.Args[0] + " comment grep Rayleigh",
	}

	commentCommand.AddCommand(initGrepCommand())
	commentCommand.AddCommand(initWordcloudCommand())

	return commentCommand
}
