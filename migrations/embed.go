// Package migrations embeds the SQL applied by cmd/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
