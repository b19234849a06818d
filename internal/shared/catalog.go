package shared

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

//go:embed sql/*.sql sql/*.json
var schemaFiles embed.FS

const (
	// BaselineVersion is the version recorded by the baseline script.
	BaselineVersion = 1

	BaselineScriptName    = "empty_database.sql"
	UpdateScriptName      = "update_database.sql"
	VersionDescriptorName = "schema_version.json"
)

// MigrationStep moves the schema from one version to the next by running Script.
type MigrationStep struct {
	From   int
	To     int
	Script string
}

// SchemaCatalog holds the baseline script and the ordered update steps the migrator can apply.
type SchemaCatalog struct {
	baseline       int
	baselineScript string
	target         int
	steps          []MigrationStep
}

// NewSchemaCatalog builds a catalog from explicit scripts. Steps are sorted by target version.
//
// The catalog target is the highest step target, or the baseline when there are no steps.
func NewSchemaCatalog(baseline int, baselineScript string, steps ...MigrationStep) (*SchemaCatalog, error) {
	if baseline < 1 {
		return nil, fmt.Errorf("%w: baseline version must be positive, got %d", ErrInvalidConfig, baseline)
	}
	if baselineScript == "" {
		return nil, fmt.Errorf("%w: baseline script is empty", ErrInvalidConfig)
	}

	sorted := make([]MigrationStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].To < sorted[j].To })

	target := baseline
	for i, s := range sorted {
		if s.To <= s.From {
			return nil, fmt.Errorf("%w: step %d -> %d does not advance", ErrInvalidConfig, s.From, s.To)
		}
		if i > 0 && sorted[i-1].To == s.To {
			return nil, fmt.Errorf("%w: duplicate step to version %d", ErrInvalidConfig, s.To)
		}
		target = s.To
	}

	return &SchemaCatalog{baseline: baseline, baselineScript: baselineScript, target: target, steps: sorted}, nil
}

// DefaultCatalog loads the scripts embedded in the binary.
func DefaultCatalog() (*SchemaCatalog, error) {
	sub, err := fs.Sub(schemaFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded schema files: %w", err)
	}
	return LoadCatalog(sub)
}

// LoadCatalogDir loads scripts from a directory on disk.
func LoadCatalogDir(dir string) (*SchemaCatalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: sql directory: %w", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, dir)
	}
	return LoadCatalog(os.DirFS(dir))
}

// LoadCatalog reads the baseline script, the version descriptor and the update script from fsys.
//
// The update script is only required when the descriptor names a version above the baseline.
// It becomes a single step from the baseline to that version.
func LoadCatalog(fsys fs.FS) (*SchemaCatalog, error) {
	baseline, err := fs.ReadFile(fsys, BaselineScriptName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInvalidConfig, BaselineScriptName, err)
	}

	descriptor, err := fs.ReadFile(fsys, VersionDescriptorName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInvalidConfig, VersionDescriptorName, err)
	}

	target, err := ParseVersionDescriptor(descriptor)
	if err != nil {
		return nil, err
	}

	if target <= BaselineVersion {
		return NewSchemaCatalog(BaselineVersion, string(baseline))
	}

	update, err := fs.ReadFile(fsys, UpdateScriptName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: version %d requires %s", ErrInvalidConfig, target, UpdateScriptName)
	} else if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInvalidConfig, UpdateScriptName, err)
	}

	return NewSchemaCatalog(BaselineVersion, string(baseline), MigrationStep{
		From:   BaselineVersion,
		To:     target,
		Script: string(update),
	})
}

// Baseline returns the version written by the baseline script.
func (c *SchemaCatalog) Baseline() int { return c.baseline }

// BaselineScript returns the script that creates every table of a fresh database.
func (c *SchemaCatalog) BaselineScript() string { return c.baselineScript }

// Target returns the newest version the catalog can reach.
func (c *SchemaCatalog) Target() int { return c.target }

// Steps returns a copy of the update steps in ascending order.
func (c *SchemaCatalog) Steps() []MigrationStep {
	out := make([]MigrationStep, len(c.steps))
	copy(out, c.steps)
	return out
}

// Pending returns the steps with current < To <= target, in ascending order.
//
// It fails with [ErrMigrationFailed] when target is above current but no step lands exactly on it.
func (c *SchemaCatalog) Pending(current, target int) ([]MigrationStep, error) {
	if target <= current {
		return []MigrationStep{}, nil
	}

	pending := make([]MigrationStep, 0, len(c.steps))
	for _, s := range c.steps {
		if s.To > current && s.To <= target {
			pending = append(pending, s)
		}
	}

	if len(pending) == 0 || pending[len(pending)-1].To != target {
		return nil, fmt.Errorf("%w: no update step reaches version %d from %d", ErrMigrationFailed, target, current)
	}
	return pending, nil
}
