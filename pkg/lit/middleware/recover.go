package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/toyz/lit/pkg/lit"
)

// Recover turns a panic in a later handler into a 500 JSON response and
// logs it with the stack
func Recover(logger *zap.Logger) lit.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next lit.HandlerFunc) lit.HandlerFunc {
		return func(ctx lit.RequestContext) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("%v", r)
				}
				logger.Error("panic recovered",
					zap.String("method", ctx.Method()),
					zap.String("path", ctx.Path()),
					zap.String("request_id", GetRequestID(ctx)),
					zap.Error(cause),
					zap.ByteString("stack", debug.Stack()),
				)
				err = lit.HandleError(ctx, lit.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), cause))
			}()
			return next(ctx)
		}
	}
}
