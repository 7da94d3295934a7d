// Package referral creates referrals and looks them up by id. Referrals
// have no list view.
package referral

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

const (
	MountForm    = "referral-form"
	MountDetails = "referral-details"

	MsgCreated = "Referral created successfully!"
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

// Submit validates the form and creates the referral. Validation failures
// are alerted and nothing is sent.
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
	c.disp.Alert(MsgCreated)
	return nil
}

// SetType changes the referral type and re-renders the form so the
// relevant input groups show.
func (c *Controller) SetType(t string) {
	c.Form.Type = t
	c.disp.RenderForm(MountForm, c.Form.View())
}

// Lookup fetches a referral by the raw id input and renders it into the
// details mount. Errors are rendered there too.
func (c *Controller) Lookup(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		c.disp.RenderText(MountDetails, "Please enter the referral ID.")
		return nil
	}
	id, err := strconv.Atoi(input)
	if err != nil {
		err = fmt.Errorf("invalid referral id %q", input)
		c.disp.RenderText(MountDetails, "Error fetching referral: "+err.Error())
		return err
	}
	r, err := c.api.Get(ctx, id)
	if err != nil {
		c.disp.RenderText(MountDetails, "Error fetching referral: "+gateway.Message(err))
		return err
	}
	c.disp.RenderDetail(MountDetails, c.detail(r))
	return nil
}

func (c *Controller) detail(r *Referral) view.Detail {
	notes := "None"
	if r.Notes != nil && *r.Notes != "" {
		notes = *r.Notes
	}
	d := view.Detail{
		Title: fmt.Sprintf("Referral #%d", r.ID),
		Fields: []view.Field{
			{Label: "Origin appointment", Value: fmt.Sprintf("ID %d (Patient: %d)", r.AppointmentID, r.PatientID)},
			{Label: "Type", Value: r.Type},
			{Label: "Notes", Value: notes},
		},
	}
	if needsExams(r.Type) {
		s := view.Section{Title: "Requested exams", Empty: "No exams recorded for this referral."}
		for _, e := range r.Exams {
			s.Lines = append(s.Lines, fmt.Sprintf("%s (ID: %d)", e.Name, e.ID))
		}
		d.Sections = append(d.Sections, s)
	}
	if needsConsultation(r.Type) {
		s := view.Section{Title: "New consultation", Empty: "No new consultation scheduled for this referral."}
		if sc := r.Scheduled; sc != nil {
			s.Lines = []string{
				fmt.Sprintf("Appointment ID: %d", sc.AppointmentID),
				fmt.Sprintf("Patient ID: %d", sc.PatientID),
				"Date: " + c.dates.DateTime(sc.Date),
			}
		}
		d.Sections = append(d.Sections, s)
	}
	return d
}

func (c *Controller) Reset() {
	c.Form.Reset()
	c.disp.RenderForm(MountForm, c.Form.View())
}
