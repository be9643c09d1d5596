package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Recovery returns middleware that converts panics into 500 responses. The
// panic value and stack go to the log only, never to the client.
func Recovery(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					requestID, _ := c.Get("request_id").(string)
					log.Error().
						Str("request_id", requestID).
						Str("method", c.Request().Method).
						Str("path", c.Request().URL.Path).
						Interface("panic", r).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					// Plain error so the error handler renders the
					// generic 500 envelope without leaking the panic.
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}
