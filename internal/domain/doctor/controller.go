// Package doctor manages the doctors panel.
package doctor

import (
	"context"
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

const (
	MountList = "doctors"
	MountForm = "doctor-form"
)

type Controller struct {
	api  *API
	disp view.Display
	Form Form
}

func NewController(rq gateway.Requester, disp view.Display) *Controller {
	return &Controller{api: NewAPI(rq), disp: disp}
}

func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	t := view.Table{
		Columns: []string{"CRM", "Name", "Specialty"},
		Empty:   "No doctors found.",
	}
	for _, d := range items {
		t.Rows = append(t.Rows, []string{d.CRM, d.Name, d.Specialty})
	}
	c.disp.RenderTable(MountList, t)
	return nil
}

func (c *Controller) Submit(ctx context.Context) error {
	if crm, ok := c.Form.Editing(); ok {
		req, err := c.Form.UpdateRequest()
		if err != nil {
			c.disp.Alert(err.Error())
			return err
		}
		if _, err := c.api.Update(ctx, crm, req); err != nil {
			return err
		}
	} else {
		req, err := c.Form.CreateRequest()
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

func validCRM(crm string) error {
	if strings.TrimSpace(crm) == "" {
		return form.Invalid("crm", "crm is required")
	}
	return nil
}

func (c *Controller) Edit(ctx context.Context, crm string) error {
	if err := validCRM(crm); err != nil {
		c.disp.Alert(err.Error())
		return err
	}
	d, err := c.api.Get(ctx, crm)
	if err != nil {
		return err
	}
	c.Form.Fill(d)
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

func (c *Controller) Delete(ctx context.Context, crm string) (bool, error) {
	if err := validCRM(crm); err != nil {
		c.disp.Alert(err.Error())
		return false, err
	}
	if !c.disp.Confirm("Are you sure you want to delete doctor " + crm + "?") {
		return false, nil
	}
	if err := c.api.Delete(ctx, crm); err != nil {
		return false, err
	}
	return true, c.Load(ctx)
}

func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
