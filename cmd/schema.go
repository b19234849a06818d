package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/modelinv/internal/shared"
	"github.com/urfave/cli/v3"
)

type schemaStatus struct {
	Version  int  `json:"version"`
	Target   int  `json:"target"`
	Baseline int  `json:"baseline"`
	Pending  int  `json:"pending"`
	Current  bool `json:"current"`
}

// SchemaVersion reports the recorded schema version against the newest one the catalog knows.
func (r *Runner) SchemaVersion(ctx context.Context, cmd *cli.Command) error {
	migrator, err := r.open()
	if err != nil {
		return err
	}

	version, err := migrator.CheckVersion()
	if err != nil {
		return err
	}

	catalog := migrator.Catalog()
	status := schemaStatus{
		Version:  version,
		Target:   catalog.Target(),
		Baseline: catalog.Baseline(),
		Current:  version >= catalog.Target(),
	}
	if !status.Current {
		steps, err := catalog.Pending(version, catalog.Target())
		if err != nil {
			return err
		}
		status.Pending = len(steps)
	}

	if cmd.Bool("json") || cmd.Bool("pretty") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Schema")
	r.writePlain("Recorded version:  %d\n", status.Version)
	r.writePlain("Available version: %d\n", status.Target)
	if status.Current {
		r.writePlain("Up to date\n")
	} else {
		r.writePlain("%d update(s) pending, run 'modelinv schema migrate'\n", status.Pending)
	}
	return nil
}

// SchemaMigrate applies updates up to --target, or to the newest version.
func (r *Runner) SchemaMigrate(ctx context.Context, cmd *cli.Command) error {
	migrator, err := r.open()
	if err != nil {
		return err
	}

	before, err := migrator.CheckVersion()
	if err != nil {
		return err
	}

	target := int(cmd.Int("target"))
	switch {
	case target == 0:
		target = migrator.Catalog().Target()
	case target < 0:
		return fmt.Errorf("%w: target must be positive, got %d", shared.ErrInvalidArgument, target)
	case target > migrator.Catalog().Target():
		return fmt.Errorf("%w: no schema version %d, newest is %d", shared.ErrInvalidArgument, target, migrator.Catalog().Target())
	case target < before:
		return fmt.Errorf("%w: cannot downgrade from %d to %d", shared.ErrInvalidArgument, before, target)
	}

	if err := migrator.Migrate(target); err != nil {
		return err
	}

	after, err := migrator.CheckVersion()
	if err != nil {
		return err
	}

	if after == before {
		r.writePlain("Already at schema version %d\n", after)
		return nil
	}
	r.logger.Info("schema migrated", "from", before, "to", after)
	r.writePlain("✓ Migrated schema from version %d to %d\n", before, after)
	return nil
}
