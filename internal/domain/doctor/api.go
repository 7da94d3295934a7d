package doctor

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/medicos"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func (a *API) List(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := a.rq.Do(ctx, http.MethodGet, basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, crm string) (*Doctor, error) {
	var out Doctor
	if err := a.rq.Do(ctx, http.MethodGet, gateway.Path("medicos", crm), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Doctor, error) {
	var out Doctor
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, crm string, req UpdateRequest) (*Doctor, error) {
	var out Doctor
	if err := a.rq.Do(ctx, http.MethodPatch, gateway.Path("medicos", crm), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, crm string) error {
	return a.rq.Do(ctx, http.MethodDelete, gateway.Path("medicos", crm), nil, nil)
}
