// Package docs registers the OpenAPI document for the v1 api with swag
// Importing it for side effects is enough; the swagger UI reads it from the swag registry
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openapi string

type doc struct{}

// ReadDoc implements swag.Swagger
func (doc) ReadDoc() string { return openapi }

func init() {
	swag.Register(swag.Name, doc{})
}
