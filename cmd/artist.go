package main

import (
	"context"

	"github.com/desertthunder/modelinv/internal/formatter"
	"github.com/desertthunder/modelinv/internal/models"
	"github.com/urfave/cli/v3"
)

// ArtistList prints every artist.
func (r *Runner) ArtistList(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.Artists.All()
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "artist", formatter.ArtistHeaders, formatter.ArtistRows(rows), false)
}

// ArtistNames prints artist names only, e.g. for shell completion.
func (r *Runner) ArtistNames(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	names, err := inv.Artists.Names()
	if err != nil {
		return err
	}
	return r.writeNames(names)
}

// ArtistSearch matches text against any artist column.
func (r *Runner) ArtistSearch(ctx context.Context, cmd *cli.Command) error {
	inv, err := r.inventory()
	if err != nil {
		return err
	}

	rows, err := inv.Artists.Search(textArg(cmd))
	if err != nil {
		return err
	}
	return r.render(cmd, rows, "artist", formatter.ArtistHeaders, formatter.ArtistRows(rows), true)
}

// ArtistAdd records a new artist.
func (r *Runner) ArtistAdd(ctx context.Context, cmd *cli.Command) error {
	a := models.Artist{
		Name:    cmd.String("name"),
		Website: cmd.String("website"),
		Email:   cmd.String("email"),
		Folder:  cmd.String("folder"),
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}

	id, err := inv.Artists.Add(a)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Added artist %d: %s\n", id, a.Name)
}

// ArtistDelete removes an artist that no model refers to.
func (r *Runner) ArtistDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}

	inv, err := r.inventory()
	if err != nil {
		return err
	}
	return r.deleted("artist", id, inv.Artists.Delete(id))
}
