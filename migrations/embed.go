// Package migrations holds the SQL schema applied by the worker's migrate command.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
