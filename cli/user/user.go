package user

import (
	"os"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	userCommand := &cobra.Command{
		Use:   "user",
		Short: "Commands for inspecting stored users",
		Example: "  # Shows per-subreddit karma statistics for a user\n" +
			"  " + os.Args[0] + " user activity some_redditor",
	}

	userCommand.AddCommand(initActivityCommand())
	userCommand.AddCommand(initContentCommand())

	return userCommand
}
