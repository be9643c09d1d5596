package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const genericErrorMessage = "Something went wrong!"

// ErrorHandler returns an echo HTTPErrorHandler that renders every error as
// a {"message": ...} envelope. Known *echo.HTTPError values keep their status
// and message; anything else becomes a generic 500 and the cause is logged
// server-side only.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := genericErrorMessage

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(he.Code)
			}
		} else {
			requestID, _ := c.Get("request_id").(string)
			log.Error().
				Err(err).
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(status); err != nil {
				log.Error().Err(err).Msg("write error response")
			}
			return
		}

		if err := c.JSON(status, map[string]string{"message": message}); err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}
