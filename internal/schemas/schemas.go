package schemas

import "embed"

// SchemasFS holds the JSON schemas for all broker events.
//
//go:embed events
var SchemasFS embed.FS
