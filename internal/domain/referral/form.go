package referral

import (
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// Messages raised when a type's required inputs are missing.
const (
	MsgExamsRequired        = "For Exam or Both referrals, 'Exam IDs' is required."
	MsgConsultationRequired = "For Consultation or Both referrals, 'New Appointment ID' and 'New Patient ID' are required."
)

// Fields are the raw inputs of the referral form.
type Fields struct {
	AppointmentID    string
	PatientID        string
	Type             string
	Notes            string
	ExamIDs          string // comma separated
	NewAppointmentID string
	NewPatientID     string
}

// Form is create-only; the embedded state never leaves create mode.
type Form struct {
	form.State[int]
	Fields
}

func (f *Form) Reset() {
	f.State.Reset()
	f.Fields = Fields{}
}

// NeedsExams reports whether the exam id input applies to the selected type.
func (f *Form) NeedsExams() bool { return needsExams(f.Type) }

// NeedsConsultation reports whether the new appointment inputs apply.
func (f *Form) NeedsConsultation() bool { return needsConsultation(f.Type) }

func (f *Form) CreateRequest() (CreateRequest, error) {
	if !validType(f.Type) {
		return CreateRequest{}, form.Invalid("type", "referral type must be one of %v, got %q", Types, f.Type)
	}
	appt, err := form.ParseID("appointment id", f.AppointmentID)
	if err != nil {
		return CreateRequest{}, err
	}
	patient, err := form.ParseID("patient id", f.PatientID)
	if err != nil {
		return CreateRequest{}, err
	}
	req := CreateRequest{AppointmentID: appt, PatientID: patient, Type: f.Type, Notes: f.Notes}

	if f.NeedsExams() {
		if strings.TrimSpace(f.ExamIDs) == "" {
			return CreateRequest{}, form.Invalid("exam_ids", MsgExamsRequired)
		}
		ids, err := form.ParseIDList("exam ids", f.ExamIDs)
		if err != nil {
			return CreateRequest{}, err
		}
		req.ExamIDs = ids
	}
	if f.NeedsConsultation() {
		if strings.TrimSpace(f.NewAppointmentID) == "" || strings.TrimSpace(f.NewPatientID) == "" {
			return CreateRequest{}, form.Invalid("new_appointment", MsgConsultationRequired)
		}
		na, err := form.ParseID("new appointment id", f.NewAppointmentID)
		if err != nil {
			return CreateRequest{}, err
		}
		np, err := form.ParseID("new patient id", f.NewPatientID)
		if err != nil {
			return CreateRequest{}, err
		}
		req.NewAppointmentID, req.NewPatientID = &na, &np
	}
	return req, nil
}

func (f *Form) View() view.Form {
	v := view.Form{
		Title: "New Referral",
		Values: []view.Field{
			{Label: "Appointment ID", Value: f.AppointmentID},
			{Label: "Patient ID", Value: f.PatientID},
			{Label: "Type", Value: f.Type},
			{Label: "Notes", Value: f.Notes},
		},
	}
	if f.NeedsExams() {
		v.Controls = append(v.Controls, "exam-group")
		v.Values = append(v.Values, view.Field{Label: "Exam IDs", Value: f.ExamIDs})
	}
	if f.NeedsConsultation() {
		v.Controls = append(v.Controls, "appointment-group")
		v.Values = append(v.Values,
			view.Field{Label: "New Appointment ID", Value: f.NewAppointmentID},
			view.Field{Label: "New Patient ID", Value: f.NewPatientID},
		)
	}
	return v
}
