package report

import (
	"github.com/speedmed/clinic-console/pkg/datetime"
)

type StatusCount struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type DoctorConsultations struct {
	Doctor string `json:"medico"`
	Total  int    `json:"total_consultas"`
}

type ReferralTypeCount struct {
	Type  string `json:"tipo"`
	Count int    `json:"quantidade"`
}

type CardiologyPatient struct {
	Patient   string `json:"paciente"`
	Doctor    string `json:"medico"`
	Specialty string `json:"especialidade"`
}

type PatientCategory struct {
	Name         string `json:"nome"`
	Appointments int    `json:"total_agendamentos"`
	Category     string `json:"categoria"`
}

type LastAppointment struct {
	Name      string `json:"nome"`
	Phone     string `json:"telefone_paciente"`
	PhoneType string `json:"tipo_telefone"`
	Status    string `json:"status"`
}

type ConsultationReferral struct {
	Doctor       string             `json:"nome_medico"`
	Specialty    string             `json:"especialidade"`
	Patient      string             `json:"nome_paciente"`
	Diagnosis    string             `json:"diagnostico"`
	Date         datetime.Timestamp `json:"data_consulta"`
	ReferralType string             `json:"tipo_encaminhamento"`
}

type PatientExams struct {
	Patient       string `json:"nome_paciente"`
	Count         int    `json:"count"`
	Exams         string `json:"exames_realizados"`
	Consultations int    `json:"total_consultas"`
}
