package submission

import (
	"log"
	"strings"

	"github.com/pkg/browser"
	"github.com/quasitext/redharvest/configuration"
	"github.com/spf13/cobra"
)

func initOpenCommand() *cobra.Command {
	openCommand := &cobra.Command{
		Use:   "open <sub_id | short_link | permalink>",
		Short: "Opens a submission in a browser.",
		Args:  cobra.ExactArgs(1),
		Run:   runOpenCommand,
	}
	return openCommand
}

func runOpenCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	s, err := st.FindSubmission(args[0])
	if err != nil {
		log.Fatal(err)
	}

	url := s.Permalink
	if strings.HasPrefix(url, "/") {
		url = "https://www.reddit.com" + url
	}
	browser.OpenURL(url)
}
