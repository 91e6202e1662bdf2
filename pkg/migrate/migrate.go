package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where the migrations live in the source tree, one
// subdirectory per database driver.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedded embed.FS

var dialects = map[string]goose.Dialect{
	"postgres": goose.DialectPostgres,
	"sqlite":   goose.DialectSQLite3,
}

// Drivers lists the db.Client drivers that ship migrations.
func Drivers() []string {
	return []string{"postgres", "sqlite"}
}

// Dialect maps a db.Client driver name to its goose dialect.
func Dialect(driver string) (goose.Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	return d, nil
}

// Migrations returns the embedded migration files for driver.
func Migrations(driver string) (fs.FS, error) {
	if _, err := Dialect(driver); err != nil {
		return nil, err
	}
	return fs.Sub(embedded, path.Join("migrations", driver))
}

func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	dialect, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	fsys, err := Migrations(driver)
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", driver, err)
	}
	// Provider.Close would close db, which the caller owns.
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration for driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return Run(ctx, db, driver, "up", io.Discard)
}

// Run executes a goose command (up, down, reset, status) with the embedded
// migrations for driver. Applied migrations and status lines go to out.
func Run(ctx context.Context, db *sql.DB, driver string, command string, out io.Writer) error {
	p, err := newProvider(db, driver)
	if err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}

	var results []*goose.MigrationResult
	switch command {
	case "up":
		results, err = p.Up(ctx)
	case "down":
		var res *goose.MigrationResult
		res, err = p.Down(ctx)
		if res != nil {
			results = append(results, res)
		}
	case "reset":
		results, err = p.DownTo(ctx, 0)
	case "status":
		return writeStatus(ctx, p, out)
	default:
		return fmt.Errorf("unknown goose command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s (%s): %w", command, driver, err)
	}

	writeResults(out, results)
	return nil
}

// MigrateToVersion migrates up or down to targetVersion, whichever side of
// the current DB version it is on.
func MigrateToVersion(ctx context.Context, db *sql.DB, driver string, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	p, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	current, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if _, err := p.UpTo(ctx, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if _, err := p.DownTo(ctx, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

func writeStatus(ctx context.Context, p *goose.Provider, out io.Writer) error {
	statuses, err := p.Status(ctx)
	if err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	for _, st := range statuses {
		applied := "-"
		if !st.AppliedAt.IsZero() {
			applied = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "%-8s %-19s %s\n", st.State, applied, path.Base(st.Source.Path))
	}
	return nil
}

func writeResults(out io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "no migrations to run")
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "%-4s %s (%s)\n", r.Direction, path.Base(r.Source.Path), r.Duration)
	}
}
