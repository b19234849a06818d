package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/modelinv/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		return fmt.Errorf("%w: --output", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Point \"database\" at your catalog file\n")
	r.writePlain("2. Run 'modelinv --config %s setup database'\n", path)
	return nil
}

// SetupDatabase opens (or creates) the database and applies pending schema updates.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.inventory(); err != nil {
		return err
	}

	version, err := r.migrator.CheckVersion()
	if err != nil {
		return err
	}

	r.logger.Info("setup complete", "version", version)
	r.writePlain("✓ Database ready at schema version %d\n", version)
	return nil
}
