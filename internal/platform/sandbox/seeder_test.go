package sandbox

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ---------------------------------------------------------------------------
// DataGenerator tests
// ---------------------------------------------------------------------------

func TestDataGenerator_GeneratePatient(t *testing.T) {
	gen := NewDataGenerator(42)
	p := gen.GeneratePatient()

	if p.Name == "" {
		t.Fatal("expected non-empty name")
	}
	if !sexes[p.Sex] {
		t.Fatalf("unexpected sexo %q", p.Sex)
	}
	if len(p.BirthDate) != len("2006-01-02") {
		t.Fatalf("unexpected birth date %q", p.BirthDate)
	}
	if p.Phones != nil {
		for _, ph := range *p.Phones {
			if !phoneTypes[ph.Type] {
				t.Fatalf("unexpected phone type %q", ph.Type)
			}
		}
	}
}

func TestDataGenerator_Reproducible(t *testing.T) {
	gen1 := NewDataGenerator(99)
	gen2 := NewDataGenerator(99)

	for i := 0; i < 5; i++ {
		p1, p2 := gen1.GeneratePatient(), gen2.GeneratePatient()
		if p1.Name != p2.Name || p1.CPF != p2.CPF {
			t.Fatalf("same seed should produce same patient, got %q/%q", p1.Name, p2.Name)
		}
	}
}

func TestDataGenerator_FirstDoctorIsCardiologist(t *testing.T) {
	gen := NewDataGenerator(7)
	if d := gen.GenerateDoctor(0); d.Specialty != "Cardiologia" {
		t.Fatalf("expected Cardiologia, got %s", d.Specialty)
	}
}

// ---------------------------------------------------------------------------
// Seeder tests
// ---------------------------------------------------------------------------

func TestSeeder_Generate_DefaultConfig(t *testing.T) {
	store := NewStore()
	cfg := DefaultSeedConfig()
	cfg.Seed = 42

	result, err := NewSeeder(store, cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Patients != cfg.PatientCount {
		t.Fatalf("expected %d patients, got %d", cfg.PatientCount, result.Patients)
	}
	if result.Doctors != cfg.DoctorCount {
		t.Fatalf("expected %d doctors, got %d", cfg.DoctorCount, result.Doctors)
	}
	if got := len(store.ListAppointments()); got != result.Appointments {
		t.Fatalf("expected %d appointments in store, got %d", result.Appointments, got)
	}
	if got := len(store.ListConsultations()); got != result.Consultations {
		t.Fatalf("expected %d consultations in store, got %d", result.Consultations, got)
	}
	if result.Total == 0 {
		t.Fatal("expected non-zero total")
	}
}

func TestSeeder_Generate_Reproducible(t *testing.T) {
	s1, s2 := NewStore(), NewStore()
	cfg := SeedConfig{PatientCount: 6, Seed: 5}

	r1, err := NewSeeder(s1, cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := NewSeeder(s2, cfg).Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.Appointments != r2.Appointments || r1.Referrals != r2.Referrals {
		t.Fatalf("same seed should produce same counts: %+v vs %+v", r1, r2)
	}
	p1, p2 := s1.ListPatients(), s2.ListPatients()
	for i := range p1 {
		if p1[i].Name != p2[i].Name {
			t.Fatalf("patient %d differs: %s vs %s", i, p1[i].Name, p2[i].Name)
		}
	}
}

func TestSeeder_Generate_ReplacesPreviousData(t *testing.T) {
	store := NewStore()
	if _, err := NewSeeder(store, SeedConfig{PatientCount: 8, Seed: 1}).Generate(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSeeder(store, SeedConfig{PatientCount: 3, Seed: 1}).Generate(); err != nil {
		t.Fatal(err)
	}
	if got := len(store.ListPatients()); got != 3 {
		t.Fatalf("expected 3 patients after reseed, got %d", got)
	}
}

// ---------------------------------------------------------------------------
// SeedHandler tests
// ---------------------------------------------------------------------------

func setupTestEcho() (*echo.Echo, *Store) {
	store := NewStore()
	return NewServer(zerolog.Nop(), store), store
}

func TestSeedHandler_Seed(t *testing.T) {
	e, store := setupTestEcho()

	body := `{"patientCount":3,"doctorCount":2,"appointmentsPerPatient":2,"seed":42}`
	req := httptest.NewRequest(http.MethodPost, "/_sandbox/seed", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result SeedResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.Patients != 3 {
		t.Fatalf("expected 3 patients, got %d", result.Patients)
	}
	if len(store.ListDoctors()) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(store.ListDoctors()))
	}
}

func TestSeedHandler_Reset(t *testing.T) {
	e, store := setupTestEcho()
	if _, err := NewSeeder(store, SeedConfig{PatientCount: 2, Seed: 3}).Generate(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/_sandbox/reset", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := len(store.ListPatients()); got != 0 {
		t.Fatalf("expected 0 patients after reset, got %d", got)
	}
}

func TestSeedHandler_ExportNDJSON(t *testing.T) {
	e, store := setupTestEcho()
	if _, err := NewSeeder(store, SeedConfig{PatientCount: 4, Seed: 9}).Generate(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/_sandbox/export/ndjson/pacientes", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	lines := 0
	sc := bufio.NewScanner(strings.NewReader(rec.Body.String()))
	for sc.Scan() {
		var p Patient
		if err := json.Unmarshal(sc.Bytes(), &p); err != nil {
			t.Fatalf("invalid NDJSON line %q: %v", sc.Text(), err)
		}
		lines++
	}
	if lines != 4 {
		t.Fatalf("expected 4 lines, got %d", lines)
	}
}

func TestSeedHandler_ExportUnknownCollection(t *testing.T) {
	e, _ := setupTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/_sandbox/export/ndjson/unknown", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
