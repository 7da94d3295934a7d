package referral

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/encaminhamentos"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Referral, error) {
	var out Referral
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Get(ctx context.Context, id int) (*Referral, error) {
	var out Referral
	if err := a.rq.Do(ctx, http.MethodGet, gateway.Path("encaminhamentos", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
