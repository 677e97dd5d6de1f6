package crawl

import (
	"context"
	"log"
	"os"

	"github.com/quasitext/redharvest/configuration"
	"github.com/quasitext/redharvest/crawler"
	"github.com/quasitext/redharvest/redditapi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envPath           string
	logLevel          string
	flairs            []string
	postLimit         int
	historyLimit      int
	requestsPerMinute int
)

func NewCommand() *cobra.Command {
	crawlCommand := &cobra.Command{
		Use:   "crawl [-d DB] <subreddit>",
		Short: "Crawl a subreddit's flaired self posts into the database",
		Args:  cobra.ExactArgs(1),
		Example: "" +
			"  " + os.Args[0] + " crawl askscience",
		Run: runCrawlCommand,
	}

	crawlCommand.Flags().StringVar(&envPath, "env", ".env", "Credentials file")
	crawlCommand.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	crawlCommand.Flags().StringSliceVar(&flairs, "flairs", crawler.DefaultFlairs, "Flair tags to search for")
	crawlCommand.Flags().IntVar(&postLimit, "post-limit", 0, "Maximum submissions per flair search, 0 for no bound")
	crawlCommand.Flags().IntVar(&historyLimit, "history-limit", crawler.DefaultHistoryLimit, "Maximum history items fetched per user")
	crawlCommand.Flags().IntVar(&requestsPerMinute, "requests-per-minute", 60, "API request budget")

	return crawlCommand
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func runCrawlCommand(cmd *cobra.Command, args []string) {
	logger := setupLogger()

	creds, err := configuration.LoadCredentials(envPath)
	if err != nil {
		log.Fatal(err)
	}

	client, err := redditapi.NewClient(creds, requestsPerMinute, logger)
	if err != nil {
		log.Fatal(err)
	}

	st, err := configuration.OpenDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	session := crawler.NewSession(client, st, logger)
	session.Flairs = flairs
	session.PostLimit = postLimit
	session.HistoryLimit = historyLimit

	if err := session.Run(context.Background(), args[0]); err != nil {
		log.Fatal(err)
	}
}
