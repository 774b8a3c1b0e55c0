package fiberpool

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"poseclient/pkg/config"
	"poseclient/pkg/rr"
	"poseclient/pkg/transport"

	fibercli "github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"
)

var _ transport.Client = (*ClientPool)(nil)

// ClientPool runs requests over fasthttp. fasthttp has no per-request
// context, so ctx is only checked before the request is sent; use
// RequestTimeout to bound a single call.
type ClientPool struct {
	clients   *rr.Set[member]
	cfg       config.Config
	closeOnce sync.Once
}

func New(cfg config.Config) *ClientPool {
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}
	ms := make([]member, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		ms = append(ms, newMember(cfg))
	}
	return &ClientPool{clients: rr.New(ms), cfg: cfg}
}

func (p *ClientPool) Do(ctx context.Context, method, path string, body any) (transport.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Accept":       "application/json",
		"X-Request-ID": uuid.NewString(),
	}
	if p.cfg.AuthToken != "" {
		headers["Authorization"] = "Bearer " + p.cfg.AuthToken
	}
	rc := fibercli.Config{Header: headers, Body: body}

	c := p.clients.Next().cli
	var (
		res *fibercli.Response
		err error
	)
	switch method {
	case http.MethodGet:
		res, err = c.Get(path, rc)
	case http.MethodPost:
		res, err = c.Post(path, rc)
	case http.MethodPut:
		res, err = c.Put(path, rc)
	case http.MethodPatch:
		res, err = c.Patch(path, rc)
	case http.MethodDelete:
		res, err = c.Delete(path, rc)
	default:
		return nil, fmt.Errorf("fiberpool: unsupported method %q", method)
	}
	if err != nil {
		return nil, err
	}
	return newFiberResp(res), nil
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
		p.clients.Each(func(m member) { m.base.CloseIdleConnections() })
	})
}
