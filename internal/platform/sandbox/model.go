// Package sandbox is an in-memory stand-in for the clinic REST API. It serves
// the same paths and payloads so the console can be demoed and tested end to
// end without a database.
package sandbox

import (
	"bytes"
	"encoding/json"
	"time"
)

// Enumerations accepted by the API.
var (
	appointmentStatuses = map[string]bool{
		"Marcada": true, "Ausente": true, "Cancelada": true,
		"Realizada": true, "Remarcada": true,
	}
	referralTypes = map[string]bool{"Exame": true, "Consulta": true, "Ambos": true}
	sexes         = map[string]bool{"F": true, "M": true, "O": true}
	phoneTypes    = map[string]bool{"Celular": true, "Residencial": true}
)

type Phone struct {
	PatientID int    `json:"id_paciente,omitempty"`
	Number    string `json:"numero"`
	Type      string `json:"tipo"`
}

type Patient struct {
	ID        int     `json:"id_paciente"`
	Name      string  `json:"nome"`
	BirthDate string  `json:"data_nascimento"`
	Sex       string  `json:"sexo"`
	Email     *string `json:"email"`
	CPF       string  `json:"cpf"`
	Phones    []Phone `json:"telefones"`
}

type PatientCreate struct {
	Name      string   `json:"nome"`
	BirthDate string   `json:"data_nascimento"`
	Sex       string   `json:"sexo"`
	Email     *string  `json:"email"`
	CPF       string   `json:"cpf"`
	Phones    *[]Phone `json:"telefones"`
}

type PatientUpdate struct {
	Name   *string  `json:"nome"`
	Sex    *string  `json:"sexo"`
	Email  *string  `json:"email"`
	Phones *[]Phone `json:"telefones"`

	// ClearEmail is set when the body carries an explicit "email": null,
	// which differs from leaving the field out.
	ClearEmail bool `json:"-"`
}

func (u *PatientUpdate) UnmarshalJSON(data []byte) error {
	type fields PatientUpdate
	if err := json.Unmarshal(data, (*fields)(u)); err != nil {
		return err
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	if v, ok := present["email"]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		u.ClearEmail = true
	}
	return nil
}

type Doctor struct {
	CRM       string `json:"crm"`
	Name      string `json:"nome"`
	Specialty string `json:"especialidade"`
}

type DoctorUpdate struct {
	Name *string `json:"nome"`
}

type apptKey struct {
	AppointmentID int
	PatientID     int
}

type Appointment struct {
	ID        int       `json:"id_agendamento"`
	PatientID int       `json:"id_paciente"`
	Date      time.Time `json:"data"`
	Notes     *string   `json:"observacoes"`
	Status    string    `json:"status"`
}

func (a *Appointment) key() apptKey { return apptKey{a.ID, a.PatientID} }

type AppointmentCreate struct {
	PatientID int       `json:"id_paciente"`
	Date      time.Time `json:"data"`
	Notes     *string   `json:"observacoes"`
}

type AppointmentUpdate struct {
	PatientID *int       `json:"id_paciente"`
	Date      *time.Time `json:"data"`
	Notes     *string    `json:"observacoes"`
	Status    *string    `json:"status"`
}

type consKey struct {
	CRM           string
	AppointmentID int
	PatientID     int
}

type Consultation struct {
	CRM           string    `json:"crm"`
	AppointmentID int       `json:"id_agendamento"`
	PatientID     int       `json:"id_paciente"`
	DateTime      time.Time `json:"data_hora"`
	Diagnosis     string    `json:"diagnostico"`
	Notes         *string   `json:"observacoes"`
}

func (c *Consultation) key() consKey { return consKey{c.CRM, c.AppointmentID, c.PatientID} }

type ConsultationUpdate struct {
	Diagnosis *string `json:"diagnostico"`
	Notes     *string `json:"observacoes"`
}

type Exam struct {
	ID          int     `json:"id_exame"`
	Name        string  `json:"nome"`
	Description *string `json:"descricao,omitempty"`
}

type Referral struct {
	ID            int
	AppointmentID int
	PatientID     int
	Type          string
	Notes         *string
	ExamIDs       []int
	NewAppt       *apptKey
}

type ReferralCreate struct {
	AppointmentID    int     `json:"id_agendamento"`
	PatientID        int     `json:"id_paciente"`
	Type             string  `json:"tipo"`
	Notes            *string `json:"observacoes"`
	ExamIDs          []int   `json:"exames_ids"`
	NewAppointmentID *int    `json:"agendamento_novo_id"`
	NewPatientID     *int    `json:"paciente_novo_id"`
}

type ExamInfo struct {
	ID   int    `json:"id_exame"`
	Name string `json:"nome"`
}

type AppointmentInfo struct {
	AppointmentID int       `json:"id_agendamento"`
	PatientID     int       `json:"id_paciente"`
	Date          time.Time `json:"data"`
}

type ReferralResponse struct {
	ID                    int              `json:"id_encaminhamento"`
	AppointmentID         int              `json:"id_agendamento"`
	PatientID             int              `json:"id_paciente"`
	Type                  string           `json:"tipo"`
	Notes                 *string          `json:"observacoes"`
	Exams                 []ExamInfo       `json:"exames"`
	ScheduledConsultation *AppointmentInfo `json:"consulta_agendada"`
}

type Reschedule struct {
	ID               int     `json:"id_remarca"`
	OldAppointmentID int     `json:"antigo_id_agendamento"`
	OldPatientID     int     `json:"antigo_id_paciente"`
	NewAppointmentID int     `json:"novo_id_agendamento"`
	NewPatientID     int     `json:"novo_id_paciente"`
	Reason           *string `json:"motivo"`
	Date             string  `json:"data_remarcacao"`
	RequestedBy      *string `json:"quem_solicitou"`
}
