// Package migrations embeds the SQL schema so the binary can migrate without a source checkout.
package migrations

import "embed"

const PostgresDir = "postgres"

//go:embed postgres/*.sql
var Postgres embed.FS
