package comment

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/bit101/go-ansi"
	"github.com/quasitext/redharvest/configuration"
	"github.com/quasitext/redharvest/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func initGrepCommand() *cobra.Command {
	grepCommand := &cobra.Command{
		Use:   "grep [-d DB] <regex>...",
		Short: "Locates comments matching one or more regular expression(s)",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGrepCommand,
	}
	return grepCommand
}

func authorName(c *model.Comment) string {
	if c.UserName == nil {
		return model.DeletedBody
	}
	return *c.UserName
}

func paginateComments(comments []*model.Comment) {
	cmd := exec.Command("/usr/bin/less", "-FRX")
	cmd.Stdout = os.Stdout

	if stdin, err := cmd.StdinPipe(); err == nil {
		go func() {
			defer stdin.Close()

			for _, c := range comments {
				ansi.Fprintf(stdin, ansi.Cyan, "%s ", c.Permalink)
				ansi.Fprintf(stdin, ansi.Green, "%s\n", c.Timestamp)
				ansi.Fprintf(stdin, ansi.Red, "%s", authorName(c))
				ansi.Fprintf(stdin, ansi.Default, ": ")
				ansi.Fprintf(stdin, ansi.Green, "\"")
				ansi.Fprintf(stdin, ansi.Default, "%s", c.Body)
				ansi.Fprintf(stdin, ansi.Green, "\"\n")
				ansi.Fprintln(stdin, ansi.Blue, "--------")
			}
		}()
	} else {
		log.Fatal(err)
	}

	err := cmd.Run()
	if err != nil {
		log.Fatal(err)
	}
}

func printComments(comments []*model.Comment) {
	for _, c := range comments {
		fmt.Printf("%s %s\n%s: %q\n", c.Permalink, c.Timestamp, authorName(c), c.Body)
		fmt.Println("--------")
	}
}

func runGrepCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	comments, err := st.GrepComments(args)
	if err != nil {
		log.Fatal(err)
	}

	isTty := term.IsTerminal(int(os.Stdout.Fd()))
	if isTty {
		paginateComments(comments)
	} else {
		printComments(comments)
	}
}
