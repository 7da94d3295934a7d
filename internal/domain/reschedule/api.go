package reschedule

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/remarcas"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func (a *API) List(ctx context.Context) ([]Reschedule, error) {
	var out []Reschedule
	if err := a.rq.Do(ctx, http.MethodGet, basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Reschedule, error) {
	var out Reschedule
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
