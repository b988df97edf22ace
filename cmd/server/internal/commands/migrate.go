package commands

import (
	"context"

	"github.com/hugh/orgroster/internal/database"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx context.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	return database.Migrate(ctx, rt.db, rt.logger)
}
