package appointment

import (
	"context"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
)

const basePath = "/agendamentos"

type API struct {
	rq gateway.Requester
}

func NewAPI(rq gateway.Requester) *API {
	return &API{rq: rq}
}

func (a *API) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := a.rq.Do(ctx, http.MethodGet, basePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, k Key) (*Appointment, error) {
	var out Appointment
	if err := a.rq.Do(ctx, http.MethodGet, gateway.Path("agendamentos", k.AppointmentID, k.PatientID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	var out Appointment
	if err := a.rq.Do(ctx, http.MethodPost, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, k Key, req UpdateRequest) (*Appointment, error) {
	var out Appointment
	if err := a.rq.Do(ctx, http.MethodPatch, gateway.Path("agendamentos", k.AppointmentID, k.PatientID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, k Key) error {
	return a.rq.Do(ctx, http.MethodDelete, gateway.Path("agendamentos", k.AppointmentID, k.PatientID), nil, nil)
}
