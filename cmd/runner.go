package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/modelinv/internal/repositories"
	"github.com/desertthunder/modelinv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	defaultDB  string
	dbPath     string
	logger     *log.Logger
	output     io.Writer

	db       *sql.DB
	migrator *shared.SchemaMigrator
	inv      *repositories.Inventory
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *shared.Config
	ConfigPath   string // config file consulted when the default database is missing
	DefaultDB    string // database looked up first, normally beside the executable
	DatabasePath string // explicit database, skips lookup
	Logger       *log.Logger
	Output       io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.DefaultDB == "" {
		opts.DefaultDB = shared.DefaultDatabaseName
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		defaultDB:  opts.DefaultDB,
		dbPath:     opts.DatabasePath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, schemaCommand, modelCommand, artistCommand, sourceCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "modelinv",
		Usage:   "Catalog of 3D printable models, their artists and sources",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"db"},
				Usage:   "Path to the database file (skips the default and config lookup)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   r.before,
		After:    r.after,
		Commands: r.register(),
	}
}

func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if v := cmd.String("database"); v != "" {
		r.dbPath = v
	}
	if v := cmd.String("config"); v != "" {
		r.configPath = v
		if r.dbPath != "" && shared.FileExists(v) {
			config, err := shared.LoadConfig(v)
			if err != nil {
				return ctx, err
			}
			r.applyConfig(config)
		}
	}
	if v := cmd.String("log-level"); v != "" {
		ll, err := shared.ParseLogLevel(v)
		if err != nil {
			return ctx, err
		}
		shared.SetLogLevel(r.logger, ll)
	}
	return ctx, nil
}

func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	err := shared.CloseDatabase(r.db)
	r.db, r.migrator, r.inv = nil, nil, nil
	return err
}

// open resolves the database path, opens it and creates the baseline schema when the database is new.
//
// Pending updates are not applied; see [Runner.inventory].
func (r *Runner) open() (*shared.SchemaMigrator, error) {
	if r.migrator != nil {
		return r.migrator, nil
	}

	path := r.dbPath
	if path == "" {
		resolved, loc, config, err := shared.ResolveDatabasePath(r.defaultDB, r.configPath)
		if err != nil {
			return nil, err
		}
		if config != nil {
			r.applyConfig(config)
		}
		r.logger.Debug("resolved database", "path", resolved, "from", loc)
		path = resolved
	}

	catalog, err := r.catalog()
	if err != nil {
		return nil, err
	}

	db, err := shared.OpenDatabase(path)
	if err != nil {
		return nil, err
	}

	migrator := shared.NewSchemaMigrator(db, catalog, shared.WithLogger(r.logger, "db", filepath.Base(path)))
	created, err := migrator.EnsureSchema()
	if err != nil {
		shared.CloseDatabase(db)
		return nil, err
	}
	if created {
		r.logger.Info("created new database", "path", path)
	}

	r.db, r.migrator = db, migrator
	return migrator, nil
}

// inventory opens the database, applies pending schema updates and returns the stores.
func (r *Runner) inventory() (*repositories.Inventory, error) {
	if r.inv != nil {
		return r.inv, nil
	}

	migrator, err := r.open()
	if err != nil {
		return nil, err
	}

	version, err := migrator.Upgrade()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("schema ready", "version", version)

	r.inv = repositories.NewInventory(r.db, r.logger)
	return r.inv, nil
}

func (r *Runner) catalog() (*shared.SchemaCatalog, error) {
	if r.config.SQLDir != "" {
		return shared.LoadCatalogDir(r.config.SQLDir)
	}
	return shared.DefaultCatalog()
}

func (r *Runner) applyConfig(config *shared.Config) {
	r.config = config
	if config.LogLevel != "" {
		if ll, err := shared.ParseLogLevel(config.LogLevel); err == nil {
			shared.SetLogLevel(r.logger, ll)
		} else {
			r.logger.Warn("ignoring log level from config", "error", err)
		}
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
