// Package migrations embeds the goose SQL migrations of the client durable
// store, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
