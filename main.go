package main

import (
	"os"

	"github.com/appops-dev/appops/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	if version != "" {
		cli.SetVersionInfo(version, commit, date)
	}
	os.Exit(cli.Execute())
}
