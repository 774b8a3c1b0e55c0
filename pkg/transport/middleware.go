package transport

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poseclient_requests_total",
		Help: "Requests sent to the pose API, by backend, method and status code.",
	}, []string{"backend", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poseclient_request_duration_seconds",
		Help:    "Round-trip time of requests to the pose API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "method"})
)

// WithRateLimit blocks each request until lim admits it or ctx is done.
func WithRateLimit(lim *rate.Limiter) Middleware {
	return func(next Client) Client {
		return wrap(next, func(ctx context.Context, method, path string, body any) (Response, error) {
			if err := lim.Wait(ctx); err != nil {
				return nil, err
			}
			return next.Do(ctx, method, path, body)
		})
	}
}

// WithMetrics counts requests and observes their latency. Transport failures
// are counted under code "error".
func WithMetrics(backend string) Middleware {
	return func(next Client) Client {
		return wrap(next, func(ctx context.Context, method, path string, body any) (Response, error) {
			start := time.Now()
			resp, err := next.Do(ctx, method, path, body)
			requestDuration.WithLabelValues(backend, method).Observe(time.Since(start).Seconds())

			code := "error"
			if err == nil {
				code = strconv.Itoa(resp.StatusCode())
			}
			requestsTotal.WithLabelValues(backend, method, code).Inc()
			return resp, err
		})
	}
}

func WithLogging(log logrus.FieldLogger) Middleware {
	return func(next Client) Client {
		return wrap(next, func(ctx context.Context, method, path string, body any) (Response, error) {
			start := time.Now()
			resp, err := next.Do(ctx, method, path, body)

			entry := log.WithFields(logrus.Fields{
				"method":   method,
				"path":     path,
				"duration": time.Since(start).String(),
			})
			switch {
			case err != nil:
				entry.WithError(err).Error("request failed")
			case resp.StatusCode() >= 400:
				entry.WithField("status", resp.StatusCode()).Warn("request rejected")
			default:
				entry.WithField("status", resp.StatusCode()).Debug("request done")
			}
			return resp, err
		})
	}
}
