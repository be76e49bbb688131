// Package schemas provides embedded SQL migration files, one directory per database driver.
package schemas

import "embed"

// Migrations contains the migrations under migrations/mysql and migrations/sqlite.
//
//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
