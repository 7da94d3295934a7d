// Package patient manages the patients panel, including the patient's
// phone list.
package patient

import (
	"context"
	"strconv"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

const (
	MountList = "patients"
	MountForm = "patient-form"
)

type Controller struct {
	api   *API
	disp  view.Display
	dates datetime.Display
	Form  Form
}

func NewController(rq gateway.Requester, disp view.Display, dates datetime.Display) *Controller {
	return &Controller{api: NewAPI(rq), disp: disp, dates: dates, Form: NewForm()}
}

func (c *Controller) Load(ctx context.Context) error {
	items, err := c.api.List(ctx)
	if err != nil {
		return err
	}
	t := view.Table{
		Columns: []string{"ID", "Name", "Birth date", "Sex", "Email", "CPF", "Phones"},
		Empty:   "No patients found.",
	}
	for _, p := range items {
		email := ""
		if p.Email != nil {
			email = *p.Email
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			c.dates.Date(p.BirthDate),
			p.Sex,
			view.OrNA(email),
			p.CPF,
			Format(p.Phones),
		})
	}
	c.disp.RenderTable(MountList, t)
	return nil
}

func (c *Controller) Submit(ctx context.Context) error {
	if id, ok := c.Form.Editing(); ok {
		req, err := c.Form.UpdateRequest()
		if err != nil {
			c.disp.Alert(err.Error())
			return err
		}
		if _, err := c.api.Update(ctx, id, req); err != nil {
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

func validID(id int) error {
	if id <= 0 {
		return form.Invalid("id", "patient id must be a positive integer, got %d", id)
	}
	return nil
}

func (c *Controller) Edit(ctx context.Context, id int) error {
	if err := validID(id); err != nil {
		c.disp.Alert(err.Error())
		return err
	}
	p, err := c.api.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Form.Fill(p)
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

// Delete removes the patient with a single request; phones go with it.
func (c *Controller) Delete(ctx context.Context, id int) (bool, error) {
	if err := validID(id); err != nil {
		c.disp.Alert(err.Error())
		return false, err
	}
	prompt := "Are you sure you want to delete patient " + strconv.Itoa(id) +
		"? Their phones are removed too, and appointments, consultations and referrals may be affected."
	if !c.disp.Confirm(prompt) {
		return false, nil
	}
	if err := c.api.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, c.Load(ctx)
}

// AddPhone appends a blank phone row.
func (c *Controller) AddPhone() {
	c.Form.Phones.Add("", "")
	c.disp.RenderForm(MountForm, c.Form.View())
}

// RemovePhone drops phone row i.
func (c *Controller) RemovePhone(i int) error {
	if err := c.Form.Phones.Remove(i); err != nil {
		return err
	}
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

// SetPhone overwrites phone row i.
func (c *Controller) SetPhone(i int, number, kind string) error {
	if err := c.Form.Phones.Set(i, number, kind); err != nil {
		return err
	}
	c.disp.RenderForm(MountForm, c.Form.View())
	return nil
}

func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
