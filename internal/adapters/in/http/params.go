package http

import (
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathID binds a required integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// statusFilter binds the optional "status" query parameter.
func statusFilter(c echo.Context) (*order.Status, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}

	status, err := order.ParseStatus(*raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
