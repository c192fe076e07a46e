// Package migrations embeds the versioned schema files applied by
// `skillmatch migrate` and, optionally, on server start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
