package user

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/bit101/go-ansi"
	"github.com/quasitext/redharvest/configuration"
	"github.com/quasitext/redharvest/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func initActivityCommand() *cobra.Command {
	activityCommand := &cobra.Command{
		Use:   "activity [-d DB] <username>",
		Short: "Shows a user's karma statistics per tracked subreddit",
		Args:  cobra.ExactArgs(1),
		Run:   runActivityCommand,
	}
	return activityCommand
}

func fmtAvg(avg *float64) string {
	if avg == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *avg)
}

func writeStats(w io.Writer, label string, ps model.PostStats) {
	ansi.Fprintf(w, ansi.Default, "  %s: ", label)
	ansi.Fprintf(w, ansi.Green, "%d", ps.Count)
	ansi.Fprintf(w, ansi.Default, " items, net karma ")
	ansi.Fprintf(w, ansi.Green, "%d", ps.NetKarma)
	ansi.Fprintf(w, ansi.Default, " (+%d/-%d), avg +%s/-%s/net %s\n",
		ps.PosKarma, ps.NegKarma, fmtAvg(ps.AvgPos), fmtAvg(ps.AvgNeg), fmtAvg(ps.AvgNet))
}

func paginateActivities(name string, activities []*model.UserActivity) {
	cmd := exec.Command("/usr/bin/less", "-FRX")
	cmd.Stdout = os.Stdout

	if stdin, err := cmd.StdinPipe(); err == nil {
		go func() {
			defer stdin.Close()

			ansi.Fprintf(stdin, ansi.Red, "%s\n", name)
			ansi.Fprintln(stdin, ansi.Blue, "========")
			for _, a := range activities {
				ansi.Fprintf(stdin, ansi.Yellow, "%s\n", a.SubredditName)
				writeStats(stdin, "comments", a.Comments)
				writeStats(stdin, "submissions", a.Submissions)
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

func printActivities(name string, activities []*model.UserActivity) {
	fmt.Println(name)
	for _, a := range activities {
		fmt.Printf("%s\n", a.SubredditName)
		fmt.Printf("  comments: %d items, net karma %d (+%d/-%d), avg +%s/-%s/net %s\n",
			a.Comments.Count, a.Comments.NetKarma, a.Comments.PosKarma, a.Comments.NegKarma,
			fmtAvg(a.Comments.AvgPos), fmtAvg(a.Comments.AvgNeg), fmtAvg(a.Comments.AvgNet))
		fmt.Printf("  submissions: %d items, net karma %d (+%d/-%d), avg +%s/-%s/net %s\n",
			a.Submissions.Count, a.Submissions.NetKarma, a.Submissions.PosKarma, a.Submissions.NegKarma,
			fmtAvg(a.Submissions.AvgPos), fmtAvg(a.Submissions.AvgNeg), fmtAvg(a.Submissions.AvgNet))
		fmt.Println("--------")
	}
}

func runActivityCommand(cmd *cobra.Command, args []string) {
	st, err := configuration.OpenExistingDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	activities, err := st.UserActivities(args[0])
	if err != nil {
		log.Fatal(err)
	}

	isTty := term.IsTerminal(int(os.Stdout.Fd()))
	if isTty {
		paginateActivities(args[0], activities)
	} else {
		printActivities(args[0], activities)
	}
}
