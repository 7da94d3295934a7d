package sandbox

import (
	"testing"
	"time"
)

func reportFixture(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	phones := []Phone{{Number: "11 9999", Type: "Celular"}}
	ana, _ := s.CreatePatient(PatientCreate{Name: "Ana", BirthDate: "1990-01-01", Sex: "F", CPF: "1", Phones: &phones})
	bia, _ := s.CreatePatient(PatientCreate{Name: "Bia", BirthDate: "1991-01-01", Sex: "F", CPF: "2"})
	s.CreateDoctor(Doctor{CRM: "CRM1", Name: "Dr. Cardio", Specialty: "Cardiologia"})
	s.CreateDoctor(Doctor{CRM: "CRM2", Name: "Dr. Derma", Specialty: "Dermatologia"})
	s.AddExam(Exam{ID: 1, Name: "Eletrocardiograma"})

	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	a1, _ := s.CreateAppointment(AppointmentCreate{PatientID: ana.ID, Date: base})
	a2, _ := s.CreateAppointment(AppointmentCreate{PatientID: ana.ID, Date: base.AddDate(0, 0, 5)})
	s.CreateAppointment(AppointmentCreate{PatientID: bia.ID, Date: base})
	done := "Realizada"
	s.UpdateAppointment(a1.ID, ana.ID, AppointmentUpdate{Status: &done})

	if _, err := s.CreateConsultation(Consultation{CRM: "CRM1", AppointmentID: a1.ID, PatientID: ana.ID, DateTime: base, Diagnosis: "Arritmia"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateReferral(ReferralCreate{AppointmentID: a1.ID, PatientID: ana.ID, Type: "Exame", ExamIDs: []int{1}}); err != nil {
		t.Fatal(err)
	}
	_ = a2
	return s
}

func TestReports_AppointmentsByStatus(t *testing.T) {
	got := reportFixture(t).AppointmentsByStatus()
	want := map[string]int{"Marcada": 2, "Realizada": 1}
	if len(got) != len(want) {
		t.Fatalf("unexpected rows %+v", got)
	}
	for _, row := range got {
		if want[row.Status] != row.Total {
			t.Errorf("%s: expected %d, got %d", row.Status, want[row.Status], row.Total)
		}
	}
}

func TestReports_ConsultationsPerDoctor(t *testing.T) {
	got := reportFixture(t).ConsultationsPerDoctor()
	if len(got) != 2 || got[0].Doctor != "Dr. Cardio" || got[0].Total != 1 || got[1].Total != 0 {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestReports_CardiologyPatients(t *testing.T) {
	got := reportFixture(t).CardiologyPatients()
	if len(got) != 1 || got[0].Patient != "Ana" || got[0].Specialty != "Cardiologia" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestReports_PatientCategories(t *testing.T) {
	got := reportFixture(t).PatientCategories()
	if got[0].Name != "Ana" || got[0].Category != "Regular" {
		t.Errorf("unexpected first row %+v", got[0])
	}
	if got[1].Name != "Bia" || got[1].Category != "Ocasional" {
		t.Errorf("unexpected second row %+v", got[1])
	}
}

func TestReports_LastAppointmentsSkipsPatientsWithoutPhone(t *testing.T) {
	got := reportFixture(t).LastAppointments()
	if len(got) != 1 || got[0].Name != "Ana" || got[0].Status != "Marcada" {
		t.Fatalf("unexpected rows %+v", got)
	}
}

func TestReports_ConsultationReferralsAndExams(t *testing.T) {
	s := reportFixture(t)
	cr := s.ConsultationReferrals()
	if len(cr) != 1 || cr[0].ReferralType != "Exame" || cr[0].Diagnosis != "Arritmia" {
		t.Fatalf("unexpected rows %+v", cr)
	}
	ex := s.ExamsPerPatient()
	if len(ex) != 1 || ex[0].Count != 1 || ex[0].Exams != "Eletrocardiograma" || ex[0].Consultations != 1 {
		t.Fatalf("unexpected rows %+v", ex)
	}
	if rt := s.ReferralsByType(); len(rt) != 1 || rt[0].Count != 1 {
		t.Fatalf("unexpected rows %+v", rt)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "Ocasional"}, {1, "Ocasional"}, {2, "Regular"}, {4, "Regular"}, {5, "Frequente"},
	}
	for _, tt := range tests {
		if got := category(tt.n); got != tt.want {
			t.Errorf("category(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}
