package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/hugh/orgroster/cmd/server/internal/commands"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	cli     struct {
		Version kong.VersionFlag
		Serve   commands.ServeCmd   `cmd:"" default:"1" help:"Start the HTTP API server."`
		Migrate commands.MigrateCmd `cmd:"" help:"Apply pending database migrations and exit."`
		Seed    commands.SeedCmd    `cmd:"" help:"Create an organisation with an admin user and optional sample data."`
	}
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("orgroster"),
		kong.Description("Multi-tenant organisation, employee and team management API."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
