// Package docs contiene el documento OpenAPI de la API y lo registra en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc []byte

// SwaggerInfo metadatos del documento; main ajusta Host y Version al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "User Admin API",
	Description:      "Autenticación y administración de usuarios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(doc),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// JSON devuelve el documento ya resuelto con los valores actuales de SwaggerInfo.
func JSON() []byte {
	out, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return doc
	}
	return []byte(out)
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
