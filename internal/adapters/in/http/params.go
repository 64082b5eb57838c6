package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
}

func pathInt64(c echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return 0, badRequest(err)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return 0, badRequest(err)
	}
	if value == nil {
		return fallback, nil
	}
	return *value, nil
}

func queryInt64(c echo.Context, name string) (*int64, error) {
	var value *int64
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, badRequest(err)
	}
	return value, nil
}

// queryDate reads a YYYY-MM-DD parameter as midnight in loc. A missing
// optional parameter yields the zero time.
func queryDate(c echo.Context, name string, required bool, loc *time.Location) (time.Time, error) {
	var value *types.Date
	if err := runtime.BindQueryParameter("form", true, required, name, c.QueryParams(), &value); err != nil {
		return time.Time{}, badRequest(err)
	}
	if value == nil {
		return time.Time{}, nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc), nil
}
