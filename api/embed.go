// Package api holds the OpenAPI document of the HTTP surface.
package api

import _ "embed"

// OpenAPI is the YAML source of the document served at /api/openapi.yaml and
// used to validate incoming requests.
//
//go:embed openapi.yaml
var OpenAPI []byte
