// Package migrations embeds the SQL schema migrations so they can be
// applied with golang-migrate's iofs source both at startup and in tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
