package main

import (
	"log"

	"github.com/quasitext/redharvest/cli"
)

func main() {
	harvestCmd := cli.NewCommand()
	if err := harvestCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
