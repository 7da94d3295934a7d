package consultation

import (
	"fmt"
	"strings"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Key identifies a consultation: the doctor plus the appointment it
// happened in.
type Key struct {
	CRM           string
	AppointmentID int
	PatientID     int
}

func (k Key) Validate() error {
	if strings.TrimSpace(k.CRM) == "" || k.AppointmentID <= 0 || k.PatientID <= 0 {
		return form.Invalid("key", "consultation key needs CRM, appointment id and patient id, got %q/%d/%d", k.CRM, k.AppointmentID, k.PatientID)
	}
	return nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%d", k.CRM, k.AppointmentID, k.PatientID)
}

type Consultation struct {
	CRM           string             `json:"crm"`
	AppointmentID int                `json:"id_agendamento"`
	PatientID     int                `json:"id_paciente"`
	DateTime      datetime.Timestamp `json:"data_hora"`
	Diagnosis     string             `json:"diagnostico"`
	Notes         *string            `json:"observacoes"`
}

func (c Consultation) Key() Key {
	return Key{CRM: c.CRM, AppointmentID: c.AppointmentID, PatientID: c.PatientID}
}

type CreateRequest struct {
	CRM           string             `json:"crm"`
	AppointmentID int                `json:"id_agendamento"`
	PatientID     int                `json:"id_paciente"`
	DateTime      datetime.Timestamp `json:"data_hora"`
	Diagnosis     string             `json:"diagnostico"`
	Notes         string             `json:"observacoes"`
}

// UpdateRequest omits every key-bearing field and the datetime.
type UpdateRequest struct {
	Diagnosis string `json:"diagnostico"`
	Notes     string `json:"observacoes"`
}
