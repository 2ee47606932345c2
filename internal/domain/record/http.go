package record

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Respond writes body with the record's ETag and Last-Modified headers.
func Respond(c echo.Context, status int, rec *Record, body interface{}) error {
	h := c.Response().Header()
	h.Set("ETag", rec.ETag())
	h.Set("Last-Modified", rec.UpdatedAt.UTC().Format(http.TimeFormat))
	return c.JSON(status, body)
}
