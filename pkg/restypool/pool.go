package restypool

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"poseclient/pkg/config"
	"poseclient/pkg/rr"
	"poseclient/pkg/transport"

	"github.com/google/uuid"
	resty "resty.dev/v3"
)

const requestIDHeader = "X-Request-ID"

var _ transport.Client = (*ClientPool)(nil)

type ClientPool struct {
	clients   *rr.Set[*resty.Client]
	cfg       config.Config
	closeOnce sync.Once
}

type Option func(*options)

type options struct {
	log resty.Logger
}

// WithLogger routes resty's own warnings and debug output to log.
func WithLogger(log resty.Logger) Option {
	return func(o *options) { o.log = log }
}

func New(cfg config.Config, opts ...Option) *ClientPool {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}

	cs := make([]*resty.Client, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		cs = append(cs, newRestyClient(cfg, o.log))
	}
	return &ClientPool{clients: rr.New(cs), cfg: cfg}
}

func (p *ClientPool) Do(ctx context.Context, method, path string, body any) (transport.Response, error) {
	req := p.clients.Next().R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
	if body != nil {
		req.SetBody(body)
	}

	var (
		res *resty.Response
		err error
	)
	switch method {
	case http.MethodGet:
		res, err = req.Get(path)
	case http.MethodPost:
		res, err = req.Post(path)
	case http.MethodPut:
		res, err = req.Put(path)
	case http.MethodPatch:
		res, err = req.Patch(path)
	case http.MethodDelete:
		res, err = req.Delete(path)
	default:
		return nil, fmt.Errorf("restypool: unsupported method %q", method)
	}
	if err != nil {
		return nil, err
	}
	return newRestyResp(res), nil
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
		p.clients.Each(func(c *resty.Client) { _ = c.Close() })
	})
}
