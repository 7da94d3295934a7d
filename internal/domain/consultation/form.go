package consultation

import (
	"strconv"
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

type Fields struct {
	CRM           string
	AppointmentID string
	PatientID     string
	DateTime      string
	Diagnosis     string
	Notes         string
}

type Form struct {
	form.State[Key]
	Fields
}

func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
}

func (f *Form) Fill(c *Consultation, dates datetime.Display) {
	f.BeginEdit(c.Key())
	f.Fields = Fields{
		CRM:           c.CRM,
		AppointmentID: strconv.Itoa(c.AppointmentID),
		PatientID:     strconv.Itoa(c.PatientID),
		DateTime:      dates.Input(c.DateTime),
		Diagnosis:     c.Diagnosis,
	}
	if c.Notes != nil {
		f.Notes = *c.Notes
	}
}

func (f *Form) Locked() []string {
	if f.Mode() == form.ModeEdit {
		return []string{"crm", "appointment_id", "patient_id", "datetime"}
	}
	return nil
}

func (f *Form) CreateRequest(dates datetime.Display) (CreateRequest, error) {
	crm := strings.TrimSpace(f.CRM)
	if crm == "" {
		return CreateRequest{}, form.Invalid("crm", "crm is required")
	}
	aid, err := form.ParseID("appointment_id", f.AppointmentID)
	if err != nil {
		return CreateRequest{}, err
	}
	pid, err := form.ParseID("patient_id", f.PatientID)
	if err != nil {
		return CreateRequest{}, err
	}
	ts, err := dates.ParseInput(f.DateTime)
	if err != nil {
		return CreateRequest{}, form.Invalid("datetime", "%v", err)
	}
	return CreateRequest{
		CRM:           crm,
		AppointmentID: aid,
		PatientID:     pid,
		DateTime:      ts,
		Diagnosis:     f.Diagnosis,
		Notes:         f.Notes,
	}, nil
}

func (f *Form) UpdateRequest() UpdateRequest {
	return UpdateRequest{Diagnosis: f.Diagnosis, Notes: f.Notes}
}

func (f *Form) View() view.Form {
	v := view.Form{
		Title:  "New Consultation",
		Locked: f.Locked(),
		Values: []view.Field{
			{Label: "CRM", Value: f.CRM},
			{Label: "Appointment ID", Value: f.AppointmentID},
			{Label: "Patient ID", Value: f.PatientID},
			{Label: "Date/Time", Value: f.DateTime},
			{Label: "Diagnosis", Value: f.Diagnosis},
			{Label: "Notes", Value: f.Notes},
		},
	}
	if key, ok := f.Editing(); ok {
		v.Title = "Edit Consultation " + key.String()
		v.Editing = true
		v.Controls = []string{"cancel-edit"}
	}
	return v
}
