// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/modelinv/internal/models"
	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
		&cli.BoolFlag{
			Name:  "plain",
			Usage: "Tab separated output without borders",
		},
	}
}

// setupCommand handles first run configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the file",
						Value:   "config.json",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the database if needed and apply schema updates",
				Action: r.SetupDatabase,
			},
		},
	}
}

// schemaCommand inspects and updates the schema version.
func schemaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Schema version commands",
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "Show the recorded and available schema versions",
				Flags:  outputFlags(),
				Action: r.SchemaVersion,
			},
			{
				Name:  "migrate",
				Usage: "Apply pending schema updates",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "target",
						Usage: "Version to migrate to (defaults to the newest)",
					},
				},
				Action: r.SchemaMigrate,
			},
		},
	}
}

// modelCommand handles model operations.
func modelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "model",
		Aliases: []string{"models", "m"},
		Usage:   "List, search, add and delete models",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every model",
				Flags:  outputFlags(),
				Action: r.ModelList,
			},
			{
				Name:  "show",
				Usage: "Show one model",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  outputFlags(),
				Action: r.ModelShow,
			},
			{
				Name:  "search",
				Usage: "Search models by field",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "field",
						Aliases: []string{"f"},
						Usage:   "Field to search: name, set_name, source_note, artist or source (column names such as Model_Name also work)",
						Value:   string(models.FieldName),
					},
				}, outputFlags()...),
				Action: r.ModelSearch,
			},
			{
				Name:  "add",
				Usage: "Add a model attributed to an existing artist and source",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Model name", Required: true},
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Source name", Required: true},
					&cli.StringFlag{Name: "set", Usage: "Set name"},
					&cli.StringFlag{Name: "note", Usage: "Source note"},
					&cli.StringFlag{Name: "format", Usage: "File format, e.g. STL"},
					&cli.BoolFlag{Name: "supports", Usage: "Model comes pre-supported"},
					&cli.BoolFlag{Name: "printed", Usage: "Model has been printed"},
				},
				Action: r.ModelAdd,
			},
			{
				Name:  "delete",
				Usage: "Delete a model",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ModelDelete,
			},
		},
	}
}

// artistCommand handles artist operations.
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artist",
		Aliases: []string{"artists"},
		Usage:   "List, search, add and delete artists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every artist",
				Flags:  outputFlags(),
				Action: r.ArtistList,
			},
			{
				Name:   "names",
				Usage:  "Print artist names, one per line",
				Action: r.ArtistNames,
			},
			{
				Name:  "search",
				Usage: "Search artists by name, website, email or folder",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags:  outputFlags(),
				Action: r.ArtistSearch,
			},
			{
				Name:  "add",
				Usage: "Add an artist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "website", Usage: "Website"},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "folder", Usage: "Folder holding the artist's files"},
				},
				Action: r.ArtistAdd,
			},
			{
				Name:  "delete",
				Usage: "Delete an artist no model refers to",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ArtistDelete,
			},
		},
	}
}

// sourceCommand handles source operations.
func sourceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "source",
		Aliases: []string{"sources"},
		Usage:   "List, search, add and delete sources",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every source",
				Flags:  outputFlags(),
				Action: r.SourceList,
			},
			{
				Name:   "names",
				Usage:  "Print source names, one per line",
				Action: r.SourceNames,
			},
			{
				Name:  "search",
				Usage: "Search sources by name or website",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "text"},
				},
				Flags:  outputFlags(),
				Action: r.SourceSearch,
			},
			{
				Name:  "add",
				Usage: "Add a source",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Source name", Required: true},
					&cli.StringFlag{Name: "website", Usage: "Website"},
				},
				Action: r.SourceAdd,
			},
			{
				Name:  "delete",
				Usage: "Delete a source no model refers to",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SourceDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the browser is open",
				Value: "./tmp/modelinv-tui.log",
			},
		},
		Action: r.TUI,
	}
}
