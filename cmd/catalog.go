package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/modelinv/internal/formatter"
	"github.com/desertthunder/modelinv/internal/shared"
	"github.com/urfave/cli/v3"
)

// idArg parses the positional row id.
func idArg(cmd *cli.Command) (int64, error) {
	raw := strings.TrimSpace(cmd.StringArg("id"))
	if raw == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// textArg returns the positional search text. Empty text matches every row.
func textArg(cmd *cli.Command) string {
	return cmd.StringArg("text")
}

// render writes rows as JSON, tab separated text or a bordered table depending on the output flags.
func (r *Runner) render(cmd *cli.Command, data any, noun string, headers []string, rows [][]string, searching bool) error {
	if cmd.Bool("json") || cmd.Bool("pretty") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	if cmd.Bool("plain") {
		if _, err := r.output.Write(formatter.Text(headers, rows, searching)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := r.writePlain("%s\n", formatter.Table(headers, rows, searching)); err != nil {
		return err
	}
	return r.writePlain("%s\n", formatter.Summary(len(rows), noun))
}

func (r *Runner) writeNames(names []string) error {
	for _, n := range names {
		if err := r.writePlain("%s\n", n); err != nil {
			return err
		}
	}
	return nil
}

// deleted reports the outcome of a delete. A refusal because models still refer to the row is explained to the user.
func (r *Runner) deleted(kind string, id int64, err error) error {
	var ref *shared.ReferencedError
	switch {
	case err == nil:
		return r.writePlain("✓ Deleted %s %d\n", kind, id)
	case errors.As(err, &ref):
		r.writePlain("Cannot delete %s %d: referenced by %s\n", kind, id, formatter.Summary(ref.Count, "model"))
		return err
	case errors.Is(err, shared.ErrNotFound):
		return fmt.Errorf("%s %d: %w", kind, id, err)
	default:
		return err
	}
}
