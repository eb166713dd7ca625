// Package migrations embeds the storefront schema, applied at startup
// by database.RunMigrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
