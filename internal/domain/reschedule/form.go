package reschedule

import (
	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

type Fields struct {
	OldAppointmentID string
	OldPatientID     string
	NewAppointmentID string
	NewPatientID     string
	Reason           string
	Date             string // yyyy-mm-dd
	RequestedBy      string
}

type Form struct {
	form.State[int]
	Fields
}

func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
}

func (f *Form) CreateRequest() (CreateRequest, error) {
	var req CreateRequest
	var err error
	for _, in := range []struct {
		field string
		raw   string
		dst   *int
	}{
		{"old appointment id", f.OldAppointmentID, &req.OldAppointmentID},
		{"old patient id", f.OldPatientID, &req.OldPatientID},
		{"new appointment id", f.NewAppointmentID, &req.NewAppointmentID},
		{"new patient id", f.NewPatientID, &req.NewPatientID},
	} {
		if *in.dst, err = form.ParseID(in.field, in.raw); err != nil {
			return CreateRequest{}, err
		}
	}
	if req.Date, err = datetime.ParseDate(f.Date); err != nil {
		return CreateRequest{}, form.Invalid("date", "reschedule date must be yyyy-mm-dd, got %q", f.Date)
	}
	req.Reason = form.OptionalString(f.Reason)
	req.RequestedBy = form.OptionalString(f.RequestedBy)
	return req, nil
}

func (f *Form) View() view.Form {
	return view.Form{
		Title: "New Reschedule",
		Values: []view.Field{
			{Label: "Old appointment", Value: f.OldAppointmentID + "/" + f.OldPatientID},
			{Label: "New appointment", Value: f.NewAppointmentID + "/" + f.NewPatientID},
			{Label: "Reason", Value: f.Reason},
			{Label: "Date", Value: f.Date},
			{Label: "Requested by", Value: f.RequestedBy},
		},
	}
}
