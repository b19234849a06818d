package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/desertthunder/modelinv/internal/shared"
)

func main() {
	logger := shared.SessionLogger(shared.NewLogger(nil))

	opts := RunnerOpts{Logger: logger}
	if dir, err := shared.ExecutableDir(); err == nil {
		opts.DefaultDB = filepath.Join(dir, shared.DefaultDatabaseName)
		opts.ConfigPath = filepath.Join(dir, shared.DefaultConfigName)
	} else {
		logger.Warn("falling back to working directory", "error", err)
	}

	runner := NewRunner(opts)
	defer runner.Close()

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		runner.Close()
		if shared.IsFatal(err) {
			logger.Fatal("store failure", "error", err)
		}
		logger.Error(err)
		os.Exit(1)
	}
}
