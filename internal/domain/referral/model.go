package referral

import (
	"github.com/speedmed/clinic-console/pkg/datetime"
)

// Referral types.
const (
	TypeExam         = "Exame"
	TypeConsultation = "Consulta"
	TypeBoth         = "Ambos"
)

var Types = []string{TypeExam, TypeConsultation, TypeBoth}

func validType(t string) bool {
	return t == TypeExam || t == TypeConsultation || t == TypeBoth
}

func needsExams(t string) bool        { return t == TypeExam || t == TypeBoth }
func needsConsultation(t string) bool { return t == TypeConsultation || t == TypeBoth }

type CreateRequest struct {
	AppointmentID    int    `json:"id_agendamento"`
	PatientID        int    `json:"id_paciente"`
	Type             string `json:"tipo"`
	Notes            string `json:"observacoes"`
	ExamIDs          []int  `json:"exames_ids,omitempty"`
	NewAppointmentID *int   `json:"agendamento_novo_id,omitempty"`
	NewPatientID     *int   `json:"paciente_novo_id,omitempty"`
}

type Exam struct {
	ID   int    `json:"id_exame"`
	Name string `json:"nome"`
}

type ScheduledConsultation struct {
	AppointmentID int                `json:"id_agendamento"`
	PatientID     int                `json:"id_paciente"`
	Date          datetime.Timestamp `json:"data"`
}

type Referral struct {
	ID            int                    `json:"id_encaminhamento"`
	AppointmentID int                    `json:"id_agendamento"`
	PatientID     int                    `json:"id_paciente"`
	Type          string                 `json:"tipo"`
	Notes         *string                `json:"observacoes"`
	Exams         []Exam                 `json:"exames"`
	Scheduled     *ScheduledConsultation `json:"consulta_agendada"`
}
