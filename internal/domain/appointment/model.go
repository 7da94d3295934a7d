package appointment

import (
	"fmt"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Statuses an appointment can be in. New appointments start as Marcada.
var Statuses = []string{"Marcada", "Ausente", "Cancelada", "Realizada", "Remarcada"}

func validStatus(s string) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Key identifies an appointment. Both halves are required.
type Key struct {
	AppointmentID int
	PatientID     int
}

func (k Key) Validate() error {
	if k.AppointmentID <= 0 || k.PatientID <= 0 {
		return form.Invalid("key", "appointment key needs both appointment id and patient id, got %d/%d", k.AppointmentID, k.PatientID)
	}
	return nil
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.AppointmentID, k.PatientID)
}

type Appointment struct {
	ID        int                `json:"id_agendamento"`
	PatientID int                `json:"id_paciente"`
	Date      datetime.Timestamp `json:"data"`
	Notes     *string            `json:"observacoes"`
	Status    string             `json:"status"`
}

func (a Appointment) Key() Key {
	return Key{AppointmentID: a.ID, PatientID: a.PatientID}
}

type CreateRequest struct {
	PatientID int                `json:"id_paciente"`
	Date      datetime.Timestamp `json:"data"`
	Notes     string             `json:"observacoes"`
}

// UpdateRequest carries the mutable fields only; patient and date are part
// of the appointment's identity on screen and cannot change.
type UpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"observacoes"`
}
