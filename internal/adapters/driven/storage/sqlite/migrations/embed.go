// Package migrations embeds SQL migration files for the signal cache.
package migrations

import "embed"

// FS holds the numbered migration files applied on cache open.
//
//go:embed *.sql
var FS embed.FS
