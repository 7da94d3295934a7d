package consultation

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/consultas"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func itemPath(k Key) string {
	return gateway.Path("consultas", k.CRM, k.AppointmentID, k.PatientID)
}

func (a *API) List(ctx context.Context) ([]Consultation, error) {
	var out []Consultation
	if err := a.rq.Do(ctx, http.MethodGet, basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, k Key) (*Consultation, error) {
	var out Consultation
	if err := a.rq.Do(ctx, http.MethodGet, itemPath(k), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Consultation, error) {
	var out Consultation
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, k Key, req UpdateRequest) (*Consultation, error) {
	var out Consultation
	if err := a.rq.Do(ctx, http.MethodPatch, itemPath(k), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, k Key) error {
	return a.rq.Do(ctx, http.MethodDelete, itemPath(k), nil, nil)
}
