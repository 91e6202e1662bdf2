package migrate

import (
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks the migrations under dir: every driver subdirectory
// must hold well-formed goose files, and each migration must exist for
// every driver under the same filename.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	return validateFS(os.DirFS(dir))
}

// ValidateEmbedded runs the same checks on the migrations built into the binary.
func ValidateEmbedded() error {
	fsys, err := fs.Sub(embedded, "migrations")
	if err != nil {
		return err
	}
	return validateFS(fsys)
}

func validateFS(fsys fs.FS) error {
	byDriver := make(map[string][]string, len(Drivers()))
	for _, driver := range Drivers() {
		names, err := validateDriver(fsys, driver)
		if err != nil {
			return err
		}
		byDriver[driver] = names
	}

	var errs error
	drivers := Drivers()
	for _, driver := range drivers {
		for _, other := range drivers {
			if other == driver {
				continue
			}
			for _, name := range missing(byDriver[driver], byDriver[other]) {
				errs = multierr.Append(errs, fmt.Errorf("migration %s has no %s counterpart", driver+"/"+name, other))
			}
		}
	}
	return errs
}

func validateDriver(fsys fs.FS, driver string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, driver)
	if err != nil {
		return nil, fmt.Errorf("read %s migrations: %w", driver, err)
	}

	seen := map[string]string{}
	var names []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %s/%s (expected YYYYMMDDHHMMSS_name.sql)", driver, name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate %s migration version %s in %q and %q", driver, version, prev, name)
		}
		seen[version] = name

		b, err := fs.ReadFile(fsys, driver+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", driver, name, err)
		}
		txt := string(b)
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(txt, marker) {
				return nil, fmt.Errorf("migration %s/%s missing %q", driver, name, marker)
			}
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// missing returns the names in want that are absent from have.
func missing(want, have []string) []string {
	set := make(map[string]struct{}, len(have))
	for _, n := range have {
		set[n] = struct{}{}
	}
	var out []string
	for _, n := range want {
		if _, ok := set[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
