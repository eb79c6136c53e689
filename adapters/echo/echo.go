// Package hxhooksecho mounts a component registry on an Echo server.
//
//	e := echo.New()
//	reg, err := hxhooksecho.Mount(e, key)
//	reg.Add(card)
package hxhooksecho

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxhooks/lib/component"
)

// Mount creates a registry and routes component.RoutePrefix to it. A nil
// key generates a random one, which only suits development: props encoded
// before a restart no longer decode.
func Mount(e *echo.Echo, key []byte, opts ...component.Option) (*component.Registry, error) {
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("hxhooksecho: generate key: %w", err)
		}
	}
	reg, err := component.NewRegistry(key, opts...)
	if err != nil {
		return nil, err
	}
	e.Any(component.RoutePrefix+"*", echo.WrapHandler(reg.Handler()))
	return reg, nil
}

// Render writes a templ component to the Echo response.
//
//	func page(c echo.Context) error {
//	    return hxhooksecho.Render(c, http.StatusOK, layout())
//	}
func Render(c echo.Context, status int, comp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return comp.Render(c.Request().Context(), c.Response())
}

// Page adapts a Lifecycle into an Echo handler that hydrates and renders
// initial props, for hosting a component on a full page.
func Page[P any](lc component.Lifecycle[P], initial func(echo.Context) P) echo.HandlerFunc {
	return func(c echo.Context) error {
		props := initial(c)
		if err := lc.Hydrate(c.Request().Context(), &props); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
		}
		return Render(c, http.StatusOK, lc.Render(c.Request().Context(), props))
	}
}
