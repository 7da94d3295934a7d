package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/speedmed/clinic-console/internal/domain/appointment"
	"github.com/speedmed/clinic-console/internal/domain/consultation"
)

// fields maps the input names accepted by "set" to the form field behind
// them, for the panel's form.
func (c *Console) fields(p Panel) map[string]*string {
	switch p {
	case Appointments:
		f := &c.Appointments.Form.Fields
		return map[string]*string{"patient": &f.PatientID, "datetime": &f.DateTime, "notes": &f.Notes, "status": &f.Status}
	case Consultations:
		f := &c.Consultations.Form.Fields
		return map[string]*string{
			"crm": &f.CRM, "appointment": &f.AppointmentID, "patient": &f.PatientID,
			"datetime": &f.DateTime, "diagnosis": &f.Diagnosis, "notes": &f.Notes,
		}
	case Referrals:
		f := &c.Referrals.Form.Fields
		return map[string]*string{
			"appointment": &f.AppointmentID, "patient": &f.PatientID, "type": &f.Type, "notes": &f.Notes,
			"exams": &f.ExamIDs, "new-appointment": &f.NewAppointmentID, "new-patient": &f.NewPatientID,
		}
	case Doctors:
		f := &c.Doctors.Form.Fields
		return map[string]*string{"crm": &f.CRM, "name": &f.Name, "specialty": &f.Specialty}
	case Patients:
		f := &c.Patients.Form.Fields
		return map[string]*string{"name": &f.Name, "birth-date": &f.BirthDate, "sex": &f.Sex, "email": &f.Email, "cpf": &f.CPF}
	case Reschedules:
		f := &c.Reschedules.Form.Fields
		return map[string]*string{
			"old-appointment": &f.OldAppointmentID, "old-patient": &f.OldPatientID,
			"new-appointment": &f.NewAppointmentID, "new-patient": &f.NewPatientID,
			"reason": &f.Reason, "date": &f.Date, "requested-by": &f.RequestedBy,
		}
	}
	return nil
}

// FieldNames lists the settable inputs of the panel's form.
func (c *Console) FieldNames(p Panel) []string {
	var names []string
	for n := range c.fields(p) {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetField writes value into the named input of the panel's form.
func (c *Console) SetField(p Panel, name, value string) error {
	fs := c.fields(p)
	if fs == nil {
		return fmt.Errorf("panel %s has no form", p)
	}
	dst, ok := fs[name]
	if !ok {
		return fmt.Errorf("panel %s has no field %q (fields: %s)", p, name, strings.Join(c.FieldNames(p), ", "))
	}
	*dst = value
	return nil
}

// ParseAppointmentKey reads "appointment/patient".
func ParseAppointmentKey(s string) (appointment.Key, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return appointment.Key{}, fmt.Errorf("appointment key must be appointment/patient, got %q", s)
	}
	a, err1 := strconv.Atoi(parts[0])
	p, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return appointment.Key{}, fmt.Errorf("appointment key must be numeric, got %q", s)
	}
	return appointment.Key{AppointmentID: a, PatientID: p}, nil
}

// ParseConsultationKey reads "crm/appointment/patient".
func ParseConsultationKey(s string) (consultation.Key, error) {
	i := strings.Index(s, "/")
	if i < 0 {
		return consultation.Key{}, fmt.Errorf("consultation key must be crm/appointment/patient, got %q", s)
	}
	ak, err := ParseAppointmentKey(s[i+1:])
	if err != nil {
		return consultation.Key{}, fmt.Errorf("consultation key must be crm/appointment/patient, got %q", s)
	}
	return consultation.Key{CRM: s[:i], AppointmentID: ak.AppointmentID, PatientID: ak.PatientID}, nil
}
