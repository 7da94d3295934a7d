package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/sandbox"
	"github.com/speedmed/clinic-console/internal/platform/view/viewtest"
)

// newServer serves the sandbox API, answering 503 on the failPath if set,
// and records the paths it was asked for.
func newServer(t *testing.T, store *sandbox.Store, failPath string, seen *[]string) *httptest.Server {
	t.Helper()
	api := sandbox.NewServer(zerolog.Nop(), store)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, r.URL.Path)
		if r.URL.Path == failPath {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"detail":"report database unavailable"}`))
			return
		}
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestViewer_LoadRendersEveryReport(t *testing.T) {
	store := sandbox.NewStore()
	p, _ := store.CreatePatient(sandbox.PatientCreate{Name: "Ana", BirthDate: "1990-01-01", Sex: "F", CPF: "1"})
	store.CreateAppointment(sandbox.AppointmentCreate{PatientID: p.ID, Date: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)})

	var seen []string
	srv := newServer(t, store, "", &seen)
	rec := viewtest.New()
	v := NewViewer(gateway.New(srv.URL, gateway.WithNotifier(rec)), rec)

	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 requests, got %v", seen)
	}
	for i, s := range sections {
		if seen[i] != s.path {
			t.Errorf("request %d: expected %s, got %s", i, s.path, seen[i])
		}
	}

	if got := rec.Lists[MountByStatus].Items; len(got) != 1 || got[0] != "Marcada: 1" {
		t.Errorf("unexpected status report %v", got)
	}
	if got := rec.Lists[MountPatientCategories].Items; len(got) != 1 || got[0] != "Ana: Ocasional (1 appointments)" {
		t.Errorf("unexpected category report %v", got)
	}
	cardio := rec.Lists[MountCardiologyPatients]
	if len(cardio.Items) != 0 || cardio.Empty != "No cardiology patients found." {
		t.Errorf("expected empty cardiology report, got %+v", cardio)
	}
}

func TestViewer_FailureWritesErrorEverywhere(t *testing.T) {
	var seen []string
	srv := newServer(t, sandbox.NewStore(), "/relatorios/pacientes-cardiologia", &seen)
	rec := viewtest.New()
	v := NewViewer(gateway.New(srv.URL, gateway.WithNotifier(rec)), rec)

	err := v.Load(context.Background())
	if gateway.StatusOf(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
	if len(seen) != 4 {
		t.Errorf("expected the sequence to stop at the 4th report, got %v", seen)
	}
	want := "Error loading report: report database unavailable"
	for _, m := range Mounts() {
		if rec.Texts[m] != want {
			t.Errorf("%s: expected %q, got %q", m, want, rec.Texts[m])
		}
	}
	if rec.LastAlert() != "API error: report database unavailable" {
		t.Errorf("unexpected alert %q", rec.LastAlert())
	}
}
