package submission

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	submissionCommand := &cobra.Command{
		Use:   "submission",
		Short: "Commands for searching stored submissions",
		Example: "  # Finds submissions mentioning 'scattering'\n" +
			"  " + os.Args[0] + " submission grep scattering",
	}

	submissionCommand.AddCommand(initGrepCommand())
	submissionCommand.AddCommand(initListCommand())
	submissionCommand.AddCommand(initOpenCommand())

	return submissionCommand
}
