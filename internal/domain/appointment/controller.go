// Package appointment manages the appointments panel: listing, booking,
// editing the status and notes of an appointment, and cancelling it.
package appointment

import (
	"context"
	"strconv"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Mount points rendered by the controller.
const (
	MountList = "appointments"
	MountForm = "appointment-form"
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

// Load fetches every appointment and renders the table.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	t := view.Table{
		Columns: []string{"ID", "Patient", "Date", "Status"},
		Empty:   "No appointments found.",
	}
	for _, a := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(a.ID),
			strconv.Itoa(a.PatientID),
			c.dates.DateTime(a.Date),
			a.Status,
		})
	}
	c.disp.RenderTable(MountList, t)
	return nil
}

// Submit creates or updates depending on the form mode. On success the form
// is reset and the list reloaded; on failure the form is left as it was.
func (c *Controller) Submit(ctx context.Context) error {
	if key, ok := c.Form.Editing(); ok {
		req, err := c.Form.UpdateRequest()
		if err != nil {
			c.disp.Alert(err.Error())
			return err
		}
		if _, err := c.api.Update(ctx, key, req); err != nil {
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

// Edit fetches the appointment and puts the form in edit mode for it.
func (c *Controller) Edit(ctx context.Context, k Key) error {
	if err := k.Validate(); err != nil {
		c.disp.Alert(err.Error())
		return err
	}
	a, err := c.api.Get(ctx, k)
	if err != nil {
		return err
	}
	c.Form.Fill(a, c.dates)
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

// Delete cancels the appointment after confirmation. It reports whether the
// request was made.
func (c *Controller) Delete(ctx context.Context, k Key) (bool, error) {
	if err := k.Validate(); err != nil {
		c.disp.Alert(err.Error())
		return false, err
	}
	if !c.disp.Confirm("Are you sure you want to cancel appointment " + k.String() + "?") {
		return false, nil
	}
	if err := c.api.Delete(ctx, k); err != nil {
		return false, err
	}
	return true, c.Load(ctx)
}

// Reset abandons any edit and shows an empty create form.
func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
