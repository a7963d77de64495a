// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files of each driver under migrations/<driver>.
// Files are named NNNN_title.up.sql, and table names are written as {{ .Table }}.
//
//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
