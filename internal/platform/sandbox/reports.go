package sandbox

import (
	"sort"
	"strings"
	"time"
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
	Doctor       string    `json:"nome_medico"`
	Specialty    string    `json:"especialidade"`
	Patient      string    `json:"nome_paciente"`
	Diagnosis    string    `json:"diagnostico"`
	Date         time.Time `json:"data_consulta"`
	ReferralType string    `json:"tipo_encaminhamento"`
}

type PatientExams struct {
	Patient       string `json:"nome_paciente"`
	Count         int    `json:"count"`
	Exams         string `json:"exames_realizados"`
	Consultations int    `json:"total_consultas"`
}

// Patient categories by number of appointments.
const (
	frequentThreshold = 5
	regularThreshold  = 2
)

func category(n int) string {
	switch {
	case n >= frequentThreshold:
		return "Frequente"
	case n >= regularThreshold:
		return "Regular"
	default:
		return "Ocasional"
	}
}

func (s *Store) AppointmentsByStatus() []StatusCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{}
	for _, a := range s.appointments {
		counts[a.Status]++
	}
	out := make([]StatusCount, 0, len(counts))
	for st, n := range counts {
		out = append(out, StatusCount{Status: st, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

func (s *Store) ConsultationsPerDoctor() []DoctorConsultations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{}
	for k := range s.consultations {
		counts[k.CRM]++
	}
	out := make([]DoctorConsultations, 0, len(s.doctors))
	for crm, d := range s.doctors {
		out = append(out, DoctorConsultations{Doctor: d.Name, Total: counts[crm]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Doctor < out[j].Doctor
	})
	return out
}

func (s *Store) ReferralsByType() []ReferralTypeCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int{}
	for _, r := range s.referrals {
		counts[r.Type]++
	}
	out := make([]ReferralTypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, ReferralTypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

func (s *Store) CardiologyPatients() []CardiologyPatient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[CardiologyPatient]bool{}
	out := []CardiologyPatient{}
	for k := range s.consultations {
		d, ok := s.doctors[k.CRM]
		if !ok || !strings.EqualFold(d.Specialty, "Cardiologia") {
			continue
		}
		p, ok := s.patients[k.PatientID]
		if !ok {
			continue
		}
		row := CardiologyPatient{Patient: p.Name, Doctor: d.Name, Specialty: d.Specialty}
		if !seen[row] {
			seen[row] = true
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Patient < out[j].Patient })
	return out
}

func (s *Store) PatientCategories() []PatientCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[int]int{}
	for k := range s.appointments {
		counts[k.PatientID]++
	}
	out := make([]PatientCategory, 0, len(s.patients))
	for id, p := range s.patients {
		n := counts[id]
		out = append(out, PatientCategory{Name: p.Name, Appointments: n, Category: category(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Appointments != out[j].Appointments {
			return out[i].Appointments > out[j].Appointments
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// LastAppointments lists, per patient with a phone, the status of their most
// recent appointment.
func (s *Store) LastAppointments() []LastAppointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := map[int]*Appointment{}
	for _, a := range s.appointments {
		if cur, ok := latest[a.PatientID]; !ok || a.Date.After(cur.Date) {
			latest[a.PatientID] = a
		}
	}
	out := []LastAppointment{}
	for id, a := range latest {
		p, ok := s.patients[id]
		if !ok || len(p.Phones) == 0 {
			continue
		}
		out = append(out, LastAppointment{
			Name:      p.Name,
			Phone:     p.Phones[0].Number,
			PhoneType: p.Phones[0].Type,
			Status:    a.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Store) ConsultationReferrals() []ConsultationReferral {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []ConsultationReferral{}
	for k, c := range s.consultations {
		d, dok := s.doctors[k.CRM]
		p, pok := s.patients[k.PatientID]
		if !dok || !pok {
			continue
		}
		for _, r := range s.referrals {
			if r.AppointmentID != k.AppointmentID || r.PatientID != k.PatientID {
				continue
			}
			out = append(out, ConsultationReferral{
				Doctor:       d.Name,
				Specialty:    d.Specialty,
				Patient:      p.Name,
				Diagnosis:    c.Diagnosis,
				Date:         c.DateTime,
				ReferralType: r.Type,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (s *Store) ExamsPerPatient() []PatientExams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exams := map[int][]string{}
	for _, r := range s.referrals {
		for _, id := range r.ExamIDs {
			if e, ok := s.exams[id]; ok {
				exams[r.PatientID] = append(exams[r.PatientID], e.Name)
			}
		}
	}
	consults := map[int]int{}
	for k := range s.consultations {
		consults[k.PatientID]++
	}
	out := []PatientExams{}
	for id, p := range s.patients {
		if len(exams[id]) == 0 && consults[id] == 0 {
			continue
		}
		names := append([]string{}, exams[id]...)
		sort.Strings(names)
		out = append(out, PatientExams{
			Patient:       p.Name,
			Count:         len(names),
			Exams:         strings.Join(names, ", "),
			Consultations: consults[id],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Patient < out[j].Patient })
	return out
}
