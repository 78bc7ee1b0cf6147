// Package schemas embeds the JSON schemas used to validate run
// configuration and stimulus catalog files before they are loaded.
package schemas

import _ "embed"

//go:embed config.schema.json
var ConfigSchema []byte

//go:embed catalog.schema.json
var CatalogSchema []byte
