package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// PanicError replaces a recovered panic. Its message is the fixed detail the
// clinic API returns for server faults; the panic value stays in the log.
type PanicError struct {
	Value     interface{}
	RequestID string
}

func (e *PanicError) Error() string   { return "Internal server error." }
func (e *PanicError) StatusCode() int { return http.StatusInternalServerError }

// Recovery turns a handler panic into a *PanicError so DetailErrorHandler
// answers with a {"detail"} body instead of dropping the connection.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				rid, _ := c.Get("request_id").(string)
				logger.Error().
					Str("request_id", rid).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Str("panic", fmt.Sprint(r)).
					Bytes("stack", debug.Stack()).
					Msg("sandbox handler panicked")
				err = &PanicError{Value: r, RequestID: rid}
			}()
			return next(c)
		}
	}
}
