package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/modelinv/internal/formatter"
	"github.com/desertthunder/modelinv/internal/models"
	"github.com/urfave/cli/v3"
)

// ModelList prints every model in insertion order.
func (r *Runner) ModelList(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.Models.All()
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "model", formatter.ModelHeaders, formatter.ModelRows(rows), false)
}

// ModelShow prints one model.
func (r *Runner) ModelShow(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}

	m, err := inv.Models.Get(id)
	if err != nil {
		return fmt.Errorf("model %d: %w", id, err)
	}
	rows := []models.Model{m}
	return r.render(cmd, m, "model", formatter.ModelHeaders, formatter.ModelRows(rows), false)
}

// ModelSearch searches one text field, or the artist or source name.
func (r *Runner) ModelSearch(ctx context.Context, cmd *cli.Command) error {
	field := cmd.String("field")
	text := textArg(cmd)

	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.SearchModels(field, text)
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "model", formatter.ModelHeaders, formatter.ModelRows(rows), true)
}

// ModelAdd records a new model. The artist and source must already exist.
func (r *Runner) ModelAdd(ctx context.Context, cmd *cli.Command) error {
	entry := models.NewModel{
		Name:       cmd.String("name"),
		Artist:     cmd.String("artist"),
		Source:     cmd.String("source"),
		SetName:    cmd.String("set"),
		SourceNote: cmd.String("note"),
		Format:     cmd.String("format"),
		Supports:   cmd.Bool("supports"),
		Printed:    cmd.Bool("printed"),
	}
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	id, err := inv.Models.Add(entry)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Added model %d: %s\n", id, entry.Name)
}

// ModelDelete removes a model by id.
func (r *Runner) ModelDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}
	return r.deleted("model", id, inv.Models.Delete(id))
}
