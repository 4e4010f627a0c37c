package assets

import _ "embed"

// CatalogYAML is the default item and recipe catalog.
//
//go:embed catalog.yaml
var CatalogYAML []byte
