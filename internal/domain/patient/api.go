package patient

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/pacientes"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func (a *API) List(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := a.rq.Do(ctx, http.MethodGet, basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id int) (*Patient, error) {
	var out Patient
	if err := a.rq.Do(ctx, http.MethodGet, gateway.Path("pacientes", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	var out Patient
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, id int, req UpdateRequest) (*Patient, error) {
	var out Patient
	if err := a.rq.Do(ctx, http.MethodPatch, gateway.Path("pacientes", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the patient. The API drops the patient's phones with it.
func (a *API) Delete(ctx context.Context, id int) error {
	return a.rq.Do(ctx, http.MethodDelete, gateway.Path("pacientes", id), nil, nil)
}
