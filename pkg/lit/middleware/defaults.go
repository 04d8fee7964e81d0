package middleware

import (
	"go.uber.org/zap"

	"github.com/toyz/lit/pkg/lit"
)

// Defaults returns the middleware enabled by cfg, outermost first: request
// id, access log, then panic recovery
func Defaults(cfg *lit.ServerConfig, logger *zap.Logger) []lit.MiddlewareFunc {
	if cfg == nil {
		cfg = lit.DefaultServerConfig()
	}

	var chain []lit.MiddlewareFunc
	if cfg.EnableRequestID {
		chain = append(chain, RequestID())
	}
	if cfg.EnableLogger {
		chain = append(chain, AccessLog(logger))
	}
	if cfg.EnableRecover {
		chain = append(chain, Recover(logger))
	}
	return chain
}
