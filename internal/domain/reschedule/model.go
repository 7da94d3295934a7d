package reschedule

import (
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Reschedule links a replaced appointment to its replacement. Records are
// append-only.
type Reschedule struct {
	ID               int           `json:"id_remarca"`
	OldAppointmentID int           `json:"antigo_id_agendamento"`
	OldPatientID     int           `json:"antigo_id_paciente"`
	NewAppointmentID int           `json:"novo_id_agendamento"`
	NewPatientID     int           `json:"novo_id_paciente"`
	Reason           *string       `json:"motivo"`
	Date             datetime.Date `json:"data_remarcacao"`
	RequestedBy      *string       `json:"quem_solicitou"`
}

type CreateRequest struct {
	OldAppointmentID int           `json:"antigo_id_agendamento"`
	OldPatientID     int           `json:"antigo_id_paciente"`
	NewAppointmentID int           `json:"novo_id_agendamento"`
	NewPatientID     int           `json:"novo_id_paciente"`
	Reason           *string       `json:"motivo"`
	Date             datetime.Date `json:"data_remarcacao"`
	RequestedBy      *string       `json:"quem_solicitou"`
}
