// Package builder wires a config.Config into ready-to-use API clients.
package builder

import (
	"fmt"

	"poseclient/pkg/config"
	"poseclient/pkg/fiberpool"
	"poseclient/pkg/pose"
	"poseclient/pkg/restypool"
	"poseclient/pkg/task"
	"poseclient/pkg/transport"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// App holds the clients built from one config. Close releases the shared pool.
type App struct {
	Config config.Config
	Log    *logrus.Logger
	Poses  *pose.Client
	Tasks  *task.Client

	transport transport.Client
}

func New(cfg config.Config, log *logrus.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tc, err := NewTransport(cfg, log)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:    cfg,
		Log:       log,
		Poses:     pose.NewClient(tc),
		Tasks:     task.NewClient(tc),
		transport: tc,
	}, nil
}

// NewTransport picks the backend named by cfg.Backend and wraps it with
// logging, metrics and, when cfg.RateLimit > 0, a shared rate limiter.
func NewTransport(cfg config.Config, log *logrus.Logger) (transport.Client, error) {
	var base transport.Client
	switch cfg.Backend {
	case config.BackendResty:
		base = restypool.New(cfg, restypool.WithLogger(log))
	case config.BackendFiber:
		base = fiberpool.New(cfg)
	default:
		return nil, fmt.Errorf("builder: unsupported backend %q", cfg.Backend)
	}

	mws := []transport.Middleware{
		transport.WithLogging(log.WithField("backend", cfg.Backend)),
		transport.WithMetrics(cfg.Backend),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		mws = append(mws, transport.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	return transport.Chain(base, mws...), nil
}

func (a *App) Close() {
	a.transport.Close()
}
