package referral

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/sandbox"
	"github.com/speedmed/clinic-console/internal/platform/sandbox/sandboxtest"
	"github.com/speedmed/clinic-console/internal/platform/view/viewtest"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

var utc = datetime.Display{Location: time.UTC}

func setup(t *testing.T) (*Controller, *sandboxtest.Server, *viewtest.Recorder) {
	t.Helper()
	srv := sandboxtest.New(t)
	rec := viewtest.New()
	return NewController(srv.Client(rec), rec, utc), srv, rec
}

// fixture creates a patient with two appointments and one exam.
func fixture(t *testing.T, s *sandbox.Store) (patient, first, second int) {
	t.Helper()
	p, err := s.CreatePatient(sandbox.PatientCreate{Name: "Ana", BirthDate: "1990-01-01", Sex: "F", CPF: "1"})
	if err != nil {
		t.Fatal(err)
	}
	when := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	a1, err := s.CreateAppointment(sandbox.AppointmentCreate{PatientID: p.ID, Date: when})
	if err != nil {
		t.Fatal(err)
	}
	a2, err := s.CreateAppointment(sandbox.AppointmentCreate{PatientID: p.ID, Date: when.Add(48 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	s.AddExam(sandbox.Exam{ID: 7, Name: "Hemograma"})
	return p.ID, a1.ID, a2.ID
}

func TestController_SubmitValidationMakesNoRequest(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		alert  string
	}{
		{"exam without ids", Fields{AppointmentID: "1", PatientID: "1", Type: TypeExam}, MsgExamsRequired},
		{"both without new ids", Fields{AppointmentID: "1", PatientID: "1", Type: TypeBoth, ExamIDs: "1, 2"}, MsgConsultationRequired},
		{"consultation missing patient", Fields{AppointmentID: "1", PatientID: "1", Type: TypeConsultation, NewAppointmentID: "3"}, MsgConsultationRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv, rec := setup(t)
			c.Form.Fields = tt.fields
			err := c.Submit(context.Background())
			if _, ok := err.(*form.ValidationError); !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if n := len(srv.Requests()); n != 0 {
				t.Errorf("expected no requests, got %d", n)
			}
			if rec.LastAlert() != tt.alert {
				t.Errorf("expected alert %q, got %q", tt.alert, rec.LastAlert())
			}
		})
	}
}

func TestController_CreateAndLookup(t *testing.T) {
	c, srv, rec := setup(t)
	p, a1, a2 := fixture(t, srv.Store)
	ctx := context.Background()

	c.Form.Fields = Fields{
		AppointmentID:    itoa(a1),
		PatientID:        itoa(p),
		Type:             TypeBoth,
		ExamIDs:          " 7 ",
		NewAppointmentID: itoa(a2),
		NewPatientID:     itoa(p),
	}
	if err := c.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.LastAlert() != MsgCreated {
		t.Errorf("expected success alert, got %q", rec.LastAlert())
	}
	if c.Form.Type != "" {
		t.Error("expected form reset after create")
	}
	w := srv.Writes()
	if len(w) != 1 || w[0].Method != http.MethodPost || w[0].Path != "/encaminhamentos" {
		t.Fatalf("unexpected writes %+v", w)
	}

	if err := c.Lookup(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := rec.Details[MountDetails]
	if d.Title != "Referral #1" || len(d.Sections) != 2 {
		t.Fatalf("unexpected detail %+v", d)
	}
	if got := d.Sections[0].Lines; len(got) != 1 || got[0] != "Hemograma (ID: 7)" {
		t.Errorf("unexpected exams %v", got)
	}
	if got := d.Sections[1].Lines; len(got) != 3 || got[2] != "Date: 12/03/2025 14:00:00" {
		t.Errorf("unexpected consultation %v", got)
	}
	if d.Fields[2].Value != "None" {
		t.Errorf("expected None notes, got %q", d.Fields[2].Value)
	}
}

func TestController_LookupExamOnlyHidesConsultation(t *testing.T) {
	c, srv, rec := setup(t)
	p, a1, _ := fixture(t, srv.Store)
	r, err := srv.Store.CreateReferral(sandbox.ReferralCreate{AppointmentID: a1, PatientID: p, Type: TypeExam, ExamIDs: []int{7}})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Lookup(context.Background(), itoa(r.ID)); err != nil {
		t.Fatal(err)
	}
	d := rec.Details[MountDetails]
	if len(d.Sections) != 1 || d.Sections[0].Title != "Requested exams" {
		t.Errorf("expected only the exam section, got %+v", d.Sections)
	}
}

func TestController_LookupMessages(t *testing.T) {
	c, _, rec := setup(t)
	ctx := context.Background()

	if err := c.Lookup(ctx, "  "); err != nil {
		t.Fatal(err)
	}
	if rec.Texts[MountDetails] != "Please enter the referral ID." {
		t.Errorf("unexpected text %q", rec.Texts[MountDetails])
	}

	if err := c.Lookup(ctx, "99"); err == nil {
		t.Fatal("expected error")
	}
	if rec.Texts[MountDetails] != "Error fetching referral: Referral not found." {
		t.Errorf("unexpected text %q", rec.Texts[MountDetails])
	}
}

func TestForm_NeedsFlags(t *testing.T) {
	tests := []struct {
		typ          string
		exams, consu bool
	}{
		{TypeExam, true, false},
		{TypeConsultation, false, true},
		{TypeBoth, true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		f := Form{Fields: Fields{Type: tt.typ}}
		if f.NeedsExams() != tt.exams || f.NeedsConsultation() != tt.consu {
			t.Errorf("%q: got exams=%v consultation=%v", tt.typ, f.NeedsExams(), f.NeedsConsultation())
		}
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
