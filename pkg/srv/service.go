package srv

import (
	"context"
	"time"

	"github.com/sandevgo/gptmcp/pkg/log"
)

const ShutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Finisher is a Service that can stop on its own, e.g. a stdio server whose
// client went away.
type Finisher interface {
	Done() <-chan struct{}
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// StopOnFinish calls stop as soon as any Finisher among services is done.
func StopOnFinish(ctx context.Context, stop context.CancelFunc, services []Service) {
	for _, service := range services {
		f, ok := service.(Finisher)
		if !ok {
			continue
		}
		go func(service Service) {
			select {
			case <-f.Done():
				log.FromCtx(ctx).Debug().Msgf("%T finished", service)
				stop()
			case <-ctx.Done():
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts services down in
// order with a fresh deadline.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	for _, service := range services {
		if err := service.Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}
}
