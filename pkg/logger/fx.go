package logger

import (
	"go.uber.org/fx"
)

// Module provides the logger as an fx module.
var Module = fx.Module("logger",
	fx.Provide(ProvideLogger),
)

// ProvideLogger creates a logger with default configuration for fx.
func ProvideLogger() (*Logger, error) {
	return New(DefaultConfig())
}
