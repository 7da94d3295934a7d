package appointment

import (
	"strconv"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Fields are the raw form inputs.
type Fields struct {
	PatientID string
	DateTime  string // yyyy-mm-ddThh:mm, local
	Notes     string
	Status    string
}

// Form is the appointment entry form.
type Form struct {
	form.State[Key]
	Fields
}

// Reset clears the inputs and returns to create mode.
func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
}

// Fill switches to edit mode for a and loads its values.
func (f *Form) Fill(a *Appointment, dates datetime.Display) {
	f.BeginEdit(a.Key())
	f.Fields = Fields{
		PatientID: strconv.Itoa(a.PatientID),
		DateTime:  dates.Input(a.Date),
		Status:    a.Status,
	}
	if a.Notes != nil {
		f.Notes = *a.Notes
	}
}

// Locked lists the inputs that cannot change in the current mode.
func (f *Form) Locked() []string {
	if f.Mode() == form.ModeEdit {
		return []string{"patient_id", "datetime"}
	}
	return nil
}

func (f *Form) CreateRequest(dates datetime.Display) (CreateRequest, error) {
	pid, err := form.ParseID("patient_id", f.PatientID)
	if err != nil {
		return CreateRequest{}, err
	}
	ts, err := dates.ParseInput(f.DateTime)
	if err != nil {
		return CreateRequest{}, form.Invalid("datetime", "%v", err)
	}
	return CreateRequest{PatientID: pid, Date: ts, Notes: f.Notes}, nil
}

func (f *Form) UpdateRequest() (UpdateRequest, error) {
	if !validStatus(f.Status) {
		return UpdateRequest{}, form.Invalid("status", "status must be one of %v, got %q", Statuses, f.Status)
	}
	return UpdateRequest{Status: f.Status, Notes: f.Notes}, nil
}

func (f *Form) View() view.Form {
	v := view.Form{
		Title:  "New Appointment",
		Locked: f.Locked(),
		Values: []view.Field{
			{Label: "Patient ID", Value: f.PatientID},
			{Label: "Date/Time", Value: f.DateTime},
			{Label: "Notes", Value: f.Notes},
		},
	}
	if key, ok := f.Editing(); ok {
		v.Title = "Edit Appointment " + key.String()
		v.Editing = true
		v.Controls = []string{"status", "cancel-edit"}
		v.Values = append(v.Values, view.Field{Label: "Status", Value: f.Status})
	}
	return v
}
