// Package reschedule lists reschedule records and appends new ones.
package reschedule

import (
	"context"
	"fmt"
	"strconv"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

const (
	MountList = "reschedules"
	MountForm = "reschedule-form"
)

type Controller struct {
	api   *API
	disp  view.Display
	dates datetime.Display
	Form  Form
}

func NewController(rq gateway.Requester, disp view.Display, dates datetime.Display) *Controller {
	return &Controller{api: NewAPI(rq), disp: disp, dates: dates}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	t := view.Table{
		Columns: []string{"ID", "Old appointment", "New appointment", "Reason", "Date", "Requested by"},
		Empty:   "No reschedules found.",
	}
	for _, r := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.ID),
			fmt.Sprintf("%d / %d", r.OldAppointmentID, r.OldPatientID),
			fmt.Sprintf("%d / %d", r.NewAppointmentID, r.NewPatientID),
			view.OrNA(deref(r.Reason)),
			c.dates.Date(r.Date),
			view.OrNA(deref(r.RequestedBy)),
		})
	}
	c.disp.RenderTable(MountList, t)
	return nil
}

func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.Form.CreateRequest()
	if err != nil {
		c.disp.Alert(err.Error())
		return err
	}
	if _, err := c.api.Create(ctx, req); err != nil {
		return err
	}
	c.Reset()
	return c.Load(ctx)
}

func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
