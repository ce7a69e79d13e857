package pagebuilder

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// RenderStatus writes a templ component as an HTML response with the given status.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderDocument writes a built page, with status 404 when the registry's 404
// entry answered the request.
func RenderDocument(c echo.Context, doc Document) error {
	code := http.StatusOK
	if doc.Page.NotFound {
		code = http.StatusNotFound
	}
	return RenderStatus(c, code, doc)
}
