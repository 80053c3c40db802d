// AngelaMos | 2026
// migrations.go

// Package migrations embeds the goose SQL migrations for the users and
// articles schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
