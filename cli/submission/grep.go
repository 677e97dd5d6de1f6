package submission

import (
	"fmt"
	"log"

	"github.com/quasitext/redharvest/configuration"
	"github.com/spf13/cobra"
)

func initGrepCommand() *cobra.Command {
	grepCommand := &cobra.Command{
		Use:   "grep <regex>...",
		Short: "Locates submissions matching one or more regular expression(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGrepCommand,
	}
	return grepCommand
}

func runGrepCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	subs, err := st.GrepSubmissions(args)
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range subs {
		fmt.Printf("%s: %q (%s)\n", s.SubID, s.Title, s.ShortLink)
	}
}
