package user

import (
	"fmt"
	"log"

	"github.com/quasitext/redharvest/configuration"
	"github.com/spf13/cobra"
)

func initContentCommand() *cobra.Command {
	contentCommand := &cobra.Command{
		Use:   "content [-d DB] <username>",
		Short: "Prints the content of a user's stored comments",
		Args:  cobra.ExactArgs(1),
		Run:   runContentCommand,
	}
	return contentCommand
}

func runContentCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	comments, err := st.UserComments(args[0])
	if err != nil {
		log.Fatal(err)
	}
	for _, comment := range comments {
		fmt.Println(comment.Permalink)
		fmt.Println(comment.Body)
	}
}
