package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// swaggerDoc serves the validated document to echo-swagger through swag's registry.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

var (
	docOnce sync.Once
	docJSON []byte
	errDoc  error
)

// LoadOpenAPI parses and validates the embedded OpenAPI document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// registerDocs serves the document as JSON and mounts Swagger UI on it.
// swag keeps a process-wide registry, so the document is registered once.
func registerDocs(e *echo.Echo) error {
	docOnce.Do(func() {
		doc, err := LoadOpenAPI(context.Background())
		if err != nil {
			errDoc = err
			return
		}
		if docJSON, errDoc = doc.MarshalJSON(); errDoc != nil {
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(docJSON)})
	})
	if errDoc != nil {
		return errDoc
	}

	e.GET("/api/v1/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
