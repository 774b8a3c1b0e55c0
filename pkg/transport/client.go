// Package transport is the request layer shared by the API clients: a
// backend-agnostic Client, JSON envelope handling, status errors and
// middlewares for logging, metrics and rate limiting.
package transport

import "context"

// Client sends one request. A non-2xx status is not an error at this level;
// Call turns it into a *StatusError.
type Client interface {
	Do(ctx context.Context, method, path string, body any) (Response, error)
	Close()
}

type Response interface {
	StatusCode() int
	Body() []byte
}

type DoFunc func(ctx context.Context, method, path string, body any) (Response, error)

type Middleware func(next Client) Client

// Chain applies mws so that the first one is the outermost.
func Chain(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// wrap replaces Do and keeps Close of the wrapped client.
func wrap(next Client, do DoFunc) Client {
	return wrapped{Client: next, do: do}
}

type wrapped struct {
	Client
	do DoFunc
}

func (w wrapped) Do(ctx context.Context, method, path string, body any) (Response, error) {
	return w.do(ctx, method, path, body)
}
