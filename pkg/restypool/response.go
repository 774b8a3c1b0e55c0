package restypool

import (
	resty "resty.dev/v3"
)

type restyResp struct {
	status int
	body   []byte
}

func newRestyResp(r *resty.Response) restyResp {
	return restyResp{
		status: r.StatusCode(),
		body:   append([]byte(nil), r.Bytes()...),
	}
}

func (r restyResp) StatusCode() int { return r.status }
func (r restyResp) Body() []byte    { return r.body }
