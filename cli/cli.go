package cli

import (
	"fmt"
	"os"

	"github.com/quasitext/redharvest/cli/comment"
	"github.com/quasitext/redharvest/cli/crawl"
	"github.com/quasitext/redharvest/cli/submission"
	"github.com/quasitext/redharvest/cli/user"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dbPath string
)

func NewCommand() *cobra.Command {
	harvestCli := &cobra.Command{
		Use:     "redharvest",
		Short:   "Redharvest CLI",
		Long:    "Redharvest Command Line Interface",
		Example: fmt.Sprintf("  %s <command> [flags...]", os.Args[0]),
	}

	harvestCli.PersistentFlags().StringVar(&dbPath, "database", "redharvest.db", "Database filename")
	viper.BindPFlag("database", harvestCli.PersistentFlags().Lookup("database"))

	harvestCli.AddCommand(comment.NewCommand())
	harvestCli.AddCommand(crawl.NewCommand())
	harvestCli.AddCommand(submission.NewCommand())
	harvestCli.AddCommand(user.NewCommand())

	return harvestCli
}
