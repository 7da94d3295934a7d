// Package report loads the eight aggregate reports and renders each into
// its own mount point.
package report

import (
	"context"
	"fmt"
	"net/http"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/view"
)

// Mount points, one per report.
const (
	MountByStatus              = "report-appointments-by-status"
	MountDoctorConsultations   = "report-doctor-consultations"
	MountReferralsByType       = "report-referrals-by-type"
	MountCardiologyPatients    = "report-cardiology-patients"
	MountPatientCategories     = "report-patient-categories"
	MountLastAppointments      = "report-last-appointments"
	MountConsultationReferrals = "report-consultation-referrals"
	MountPatientExams          = "report-patient-exams"
)

// section is one report: where it is fetched from, where it renders, and
// how each row becomes a line.
type section struct {
	mount string
	path  string
	empty string
	fetch func(ctx context.Context, rq gateway.Requester, path string) ([]string, error)
}

// lines fetches a list of T and formats each element.
func lines[T any](format func(T) string) func(context.Context, gateway.Requester, string) ([]string, error) {
	return func(ctx context.Context, rq gateway.Requester, path string) ([]string, error) {
		var rows []T
		if err := rq.Do(ctx, http.MethodGet, path, nil, &rows); err != nil {
			return nil, err
		}
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, format(r))
		}
		return out, nil
	}
}

var sections = []section{
	{
		mount: MountByStatus,
		path:  "/relatorios/agendamentos-por-status",
		empty: "No appointment status data available.",
		fetch: lines(func(r StatusCount) string { return fmt.Sprintf("%s: %d", r.Status, r.Total) }),
	},
	{
		mount: MountDoctorConsultations,
		path:  "/relatorios/medicos-total-consultas",
		empty: "No doctor consultation data available.",
		fetch: lines(func(r DoctorConsultations) string { return fmt.Sprintf("%s: %d consultations", r.Doctor, r.Total) }),
	},
	{
		mount: MountReferralsByType,
		path:  "/relatorios/encaminhamentos-por-tipo",
		empty: "No referral data available.",
		fetch: lines(func(r ReferralTypeCount) string { return fmt.Sprintf("%s: %d", r.Type, r.Count) }),
	},
	{
		mount: MountCardiologyPatients,
		path:  "/relatorios/pacientes-cardiologia",
		empty: "No cardiology patients found.",
		fetch: lines(func(r CardiologyPatient) string {
			return fmt.Sprintf("%s: %s (%s)", r.Patient, r.Doctor, r.Specialty)
		}),
	},
	{
		mount: MountPatientCategories,
		path:  "/relatorios/categoria-paciente",
		empty: "No patient categories available.",
		fetch: lines(func(r PatientCategory) string {
			return fmt.Sprintf("%s: %s (%d appointments)", r.Name, r.Category, r.Appointments)
		}),
	},
	{
		mount: MountLastAppointments,
		path:  "/relatorios/ultimo-agendamento-paciente",
		empty: "No last appointments available.",
		fetch: lines(func(r LastAppointment) string { return fmt.Sprintf("%s: %s (Phone: %s)", r.Name, r.Status, r.Phone) }),
	},
	{
		mount: MountConsultationReferrals,
		path:  "/relatorios/consultas-encaminhamentos",
		empty: "No consultation and referral data available.",
		fetch: lines(func(r ConsultationReferral) string {
			return fmt.Sprintf("Patient: %s | Doctor: %s (%s) | Diagnosis: %s | Referral: %s",
				r.Patient, r.Doctor, r.Specialty, r.Diagnosis, r.ReferralType)
		}),
	},
	{
		mount: MountPatientExams,
		path:  "/relatorios/exames-consultas-por-paciente",
		empty: "No exam and consultation data per patient available.",
		fetch: lines(func(r PatientExams) string {
			return fmt.Sprintf("Patient: %s | Total exams: %d | Exams: %s | Total consultations: %d",
				r.Patient, r.Count, r.Exams, r.Consultations)
		}),
	},
}

// Mounts returns the report mount points in load order.
func Mounts() []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.mount
	}
	return out
}

type Viewer struct {
	rq   gateway.Requester
	disp view.View
}

func NewViewer(rq gateway.Requester, disp view.View) *Viewer {
	return &Viewer{rq: rq, disp: disp}
}

// Load fetches the reports one after another. The first failure stops the
// sequence and its message is written into every report mount, including
// those already rendered.
func (v *Viewer) Load(ctx context.Context) error {
	for _, s := range sections {
		items, err := s.fetch(ctx, v.rq, s.path)
		if err != nil {
			msg := "Error loading report: " + gateway.Message(err)
			for _, m := range Mounts() {
				v.disp.RenderText(m, msg)
			}
			return fmt.Errorf("report %s: %w", s.path, err)
		}
		v.disp.RenderList(s.mount, items, s.empty)
	}
	return nil
}
