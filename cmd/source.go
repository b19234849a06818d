package main

import (
	"context"

	"github.com/desertthunder/modelinv/internal/formatter"
	"github.com/desertthunder/modelinv/internal/models"
	"github.com/urfave/cli/v3"
)

// SourceList prints every source.
func (r *Runner) SourceList(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.Sources.All()
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "source", formatter.SourceHeaders, formatter.SourceRows(rows), false)
}

// SourceNames prints source names only.
func (r *Runner) SourceNames(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	names, err := inv.Sources.Names()
	if err != nil {
		return err
	}
	return r.writeNames(names)
}

// SourceSearch matches text against source names and websites.
func (r *Runner) SourceSearch(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.Sources.Search(textArg(cmd))
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "source", formatter.SourceHeaders, formatter.SourceRows(rows), true)
}

// SourceAdd records a new source.
func (r *Runner) SourceAdd(ctx context.Context, cmd *cli.Command) error {
	s := models.Source{
		Name:    cmd.String("name"),
		Website: cmd.String("website"),
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}

	id, err := inv.Sources.Add(s)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added source %d: %s\n", id, s.Name)
}

// SourceDelete removes an source that no model refers to.
func (r *Runner) SourceDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}
	return r.deleted("source", id, inv.Sources.Delete(id))
}
