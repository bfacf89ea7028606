// Package assets bundles the files the server needs without a checkout:
// the default level and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed default_level.yaml sql/*.sql
var FS embed.FS

// DefaultLevel returns the raw YAML of the built-in level.
func DefaultLevel() ([]byte, error) {
	return FS.ReadFile("default_level.yaml")
}

// Migrations returns the migration files rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// "sql" is embedded above; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
