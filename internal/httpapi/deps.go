package httpapi

import (
	"go.uber.org/zap"

	"salary-dashboard/internal/app"
	"salary-dashboard/internal/config"
)

type Deps struct {
	App     *app.App
	Session *app.Session

	Cfg config.Config
	Log *zap.Logger

	// Limiter throttles the rendering endpoints; nil disables it.
	Limiter *ClientLimiter
}
