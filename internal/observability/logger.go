package observability

import "go.uber.org/zap"

func NewLogger() *zap.Logger {
	return zap.Must(zap.NewProduction())
}
