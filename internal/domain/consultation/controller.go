// Package consultation manages the consultations panel. A consultation is
// keyed by the doctor's CRM and the appointment it belongs to; only its
// diagnosis and notes can be edited.
package consultation

import (
	"context"
	"strconv"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

const (
	MountList = "consultations"
	MountForm = "consultation-form"
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

func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	t := view.Table{
		Columns: []string{"Appointment", "CRM", "Patient", "Date/Time", "Diagnosis"},
		Empty:   "No consultations found.",
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(it.AppointmentID),
			it.CRM,
			strconv.Itoa(it.PatientID),
			c.dates.ShortDateTime(it.DateTime),
			view.OrNA(it.Diagnosis),
		})
	}
	c.disp.RenderTable(MountList, t)
	return nil
}

func (c *Controller) Submit(ctx context.Context) error {
	if key, ok := c.Form.Editing(); ok {
		if _, err := c.api.Update(ctx, key, c.Form.UpdateRequest()); err != nil {
			return err
		}
	} else {
		req, err := c.Form.CreateRequest(c.dates)
		if err != nil {
			c.disp.Alert(err.Error())
			return err
		}
		if _, err := c.api.Create(ctx, req); err != nil {
			return err
		}
	}
	c.Reset()
	return c.Load(ctx)
}

func (c *Controller) Edit(ctx context.Context, k Key) error {
	if err := k.Validate(); err != nil {
		c.disp.Alert(err.Error())
		return err
	}
	cons, err := c.api.Get(ctx, k)
	if err != nil {
		return err
	}
	c.Form.Fill(cons, c.dates)
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

func (c *Controller) Delete(ctx context.Context, k Key) (bool, error) {
	if err := k.Validate(); err != nil {
		c.disp.Alert(err.Error())
		return false, err
	}
	if !c.disp.Confirm("Confirm deleting consultation " + k.String() + "?") {
		return false, nil
	}
	if err := c.api.Delete(ctx, k); err != nil {
		return false, err
	}
	return true, c.Load(ctx)
}

func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
