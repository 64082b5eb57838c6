package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// LoadOpenAPI parses and validates the API document.
func LoadOpenAPI(ctx context.Context, raw []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}

	if err = doc.Validate(ctx, openapi3.DisableSchemaFormatValidation()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	return doc, nil
}

// OpenAPIValidator rejects requests that do not match the operation declared
// for the matched echo route. Routes absent from the document pass through.
//
// The operation is looked up by echo's route template rather than by a
// kin-openapi router, since echo already resolved the static
// /couriers/assignments against the templated /couriers/{courier_id}.
func OpenAPIValidator(doc *openapi3.T) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := findRoute(doc, c.Path(), c.Request().Method)
			if route == nil {
				return next(c)
			}

			names := c.ParamNames()
			values := c.ParamValues()
			params := make(map[string]string, len(names))
			for i, name := range names {
				if i < len(values) {
					params[name] = values[i]
				}
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: params,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
			}

			return next(c)
		}
	}
}

func findRoute(doc *openapi3.T, echoPath, method string) *routers.Route {
	path := openAPIPath(echoPath)
	item := doc.Paths.Value(path)
	if item == nil {
		return nil
	}

	op := item.GetOperation(method)
	if op == nil {
		return nil
	}

	return &routers.Route{
		Spec:      doc,
		Path:      path,
		PathItem:  item,
		Method:    method,
		Operation: op,
	}
}

// openAPIPath turns "/couriers/:courier_id" into "/couriers/{courier_id}".
func openAPIPath(echoPath string) string {
	segments := strings.Split(echoPath, "/")
	for i, segment := range segments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}
