package console

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/speedmed/clinic-console/internal/domain/appointment"
	"github.com/speedmed/clinic-console/internal/domain/consultation"
	"github.com/speedmed/clinic-console/internal/domain/doctor"
	"github.com/speedmed/clinic-console/internal/domain/patient"
	"github.com/speedmed/clinic-console/internal/domain/referral"
	"github.com/speedmed/clinic-console/internal/domain/report"
	"github.com/speedmed/clinic-console/internal/domain/reschedule"
	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Console owns one controller per entity, the report viewer and the router
// that switches between them. Form state lives as long as the Console.
type Console struct {
	Router        *Router
	Appointments  *appointment.Controller
	Consultations *consultation.Controller
	Referrals     *referral.Controller
	Doctors       *doctor.Controller
	Patients      *patient.Controller
	Reschedules   *reschedule.Controller
	Reports       *report.Viewer
}

func New(rq gateway.Requester, disp view.Display, dates datetime.Display, logger zerolog.Logger) *Console {
	c := &Console{
		Router:        NewRouter(disp, logger),
		Appointments:  appointment.NewController(rq, disp, dates),
		Consultations: consultation.NewController(rq, disp, dates),
		Referrals:     referral.NewController(rq, disp, dates),
		Doctors:       doctor.NewController(rq, disp),
		Patients:      patient.NewController(rq, disp, dates),
		Reschedules:   reschedule.NewController(rq, disp, dates),
		Reports:       report.NewViewer(rq, disp),
	}
	c.Router.Register(Appointments, c.Appointments.Load)
	c.Router.Register(Consultations, c.Consultations.Load)
	c.Router.Register(Doctors, c.Doctors.Load)
	c.Router.Register(Patients, c.Patients.Load)
	c.Router.Register(Reschedules, c.Reschedules.Load)
	c.Router.Register(Reports, c.Reports.Load)
	return c
}

// Start shows the home panel.
func (c *Console) Start(ctx context.Context) error {
	return c.Router.Show(ctx, Home)
}
