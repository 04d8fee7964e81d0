package middleware

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/toyz/lit/pkg/lit"
)

// AccessLog logs one line per request. Server errors log at error level,
// client errors at warn, everything else at info.
func AccessLog(logger *zap.Logger) lit.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next lit.HandlerFunc) lit.HandlerFunc {
		return func(ctx lit.RequestContext) error {
			start := time.Now()

			err := lit.HandleError(ctx, next(ctx))

			status := ctx.Response().Status()
			level := zapcore.InfoLevel
			switch {
			case status >= 500:
				level = zapcore.ErrorLevel
			case status >= 400:
				level = zapcore.WarnLevel
			}

			fields := []zap.Field{
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", ctx.RealIP()),
			}
			if id := GetRequestID(ctx); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			if ce := logger.Check(level, "request"); ce != nil {
				ce.Write(fields...)
			}
			return err
		}
	}
}
