// Package migrations embeds the SQL schema for every supported store.
package migrations

import "embed"

// FS holds one directory per golang-migrate driver name.
//
//go:embed postgres/*.sql sqlite3/*.sql
var FS embed.FS
