package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/sintern/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	version := buildVersion()
	cli.Version = version

	ctx := kong.Parse(&app,
		kong.Vars{
			"version": version,
		},
		kong.Name("sintern"),
		kong.Description("Intern the identifiers of source files and inspect the result."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	)

	result := cli.Result(ctx.Run())
	if result.ExitCode == 0 {
		return
	}

	// Command errors have already been reported.
	var cmdErr *cli.CommandError
	if !errors.As(result.Err, &cmdErr) {
		ctx.Errorf("%s", result.Err)
	}
	os.Exit(result.ExitCode)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
