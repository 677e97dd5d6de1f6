package submission

import (
	"fmt"
	"log"

	"github.com/quasitext/redharvest/configuration"
	"github.com/spf13/cobra"
)

func initListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists submissions in the database",
		Run:   runListCommand,
	}
	return listCommand
}

func runListCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	subs, err := st.Submissions()
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range subs {
		fmt.Printf("%s: %q (%s)\n", s.SubID, s.Title, s.ShortLink)
	}
}
