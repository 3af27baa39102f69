package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/baykovr/blogforge/cmd/blogforge/commands"
	"github.com/baykovr/blogforge/internal/site"
)

var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogforge"),
		kong.Description("Build, lint, and serve a markdown blog rendered with Hugo."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Bind(cli),
		kong.Bind(&commands.Global{Logger: slog.Default()}),
	)

	if err := ctx.Run(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(site.ExitCode(err))
	}
}
