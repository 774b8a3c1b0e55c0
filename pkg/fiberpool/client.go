package fiberpool

import (
	"crypto/tls"
	"net"

	"poseclient/pkg/config"

	fibercli "github.com/gofiber/fiber/v3/client"
	"github.com/valyala/fasthttp"
)

func newFiberBase(cfg config.Config) *fasthttp.Client {
	return &fasthttp.Client{
		Dial:                func(addr string) (net.Conn, error) { return fasthttp.DialTimeout(addr, cfg.DialTimeout) },
		TLSConfig:           &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
		ReadTimeout:         cfg.RequestTimeout,
		WriteTimeout:        cfg.RequestTimeout,
		MaxIdleConnDuration: cfg.IdleConnTimeout,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		MaxConnWaitTimeout:  cfg.RequestTimeout,
	}
}

type member struct {
	cli  *fibercli.Client
	base *fasthttp.Client
}

func newMember(cfg config.Config) member {
	base := newFiberBase(cfg)
	return member{
		cli:  fibercli.NewWithClient(base).SetTimeout(cfg.RequestTimeout).SetBaseURL(cfg.BaseURL),
		base: base,
	}
}

type fiberResp struct {
	status int
	body   []byte
}

// newFiberResp copies the body out and releases r back to fiber's pool.
func newFiberResp(r *fibercli.Response) fiberResp {
	defer r.Close()
	return fiberResp{
		status: r.StatusCode(),
		body:   append([]byte(nil), r.Body()...),
	}
}

func (r fiberResp) StatusCode() int { return r.status }
func (r fiberResp) Body() []byte    { return r.body }
