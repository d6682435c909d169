package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/cuenca-resiliencia/erp-api/cmd/api/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Version   kong.VersionFlag
		Serve     commands.ServeCmd     `cmd:"" default:"1" help:"Start the HTTP API."`
		Migrate   commands.MigrateCmd   `cmd:"" help:"Apply database migrations and exit."`
		Bootstrap commands.BootstrapCmd `cmd:"" help:"Create an organization with its first governance user."`
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("erp-api"),
		kong.Description("Environmental incident ERP backend."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
