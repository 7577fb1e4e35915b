// Package migrations embeds the goose SQL migrations for the preset catalogue.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
