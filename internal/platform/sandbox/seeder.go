package sandbox

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SeedConfig controls the volume and shape of generated clinic data.
type SeedConfig struct {
	PatientCount           int     `json:"patientCount"`
	DoctorCount            int     `json:"doctorCount"`
	AppointmentsPerPatient int     `json:"appointmentsPerPatient"`
	ReferralRate           float64 `json:"referralRate"`
	Seed                   int64   `json:"seed"`
}

// DefaultSeedConfig returns a SeedConfig sized for a demo session.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		PatientCount:           12,
		DoctorCount:            5,
		AppointmentsPerPatient: 4,
		ReferralRate:           0.5,
	}
}

func (c SeedConfig) withDefaults() SeedConfig {
	def := DefaultSeedConfig()
	if c.PatientCount <= 0 {
		c.PatientCount = def.PatientCount
	}
	if c.DoctorCount <= 0 {
		c.DoctorCount = def.DoctorCount
	}
	if c.AppointmentsPerPatient <= 0 {
		c.AppointmentsPerPatient = def.AppointmentsPerPatient
	}
	if c.ReferralRate <= 0 || c.ReferralRate > 1 {
		c.ReferralRate = def.ReferralRate
	}
	return c
}

// SeedResult summarizes the output of a seed operation.
type SeedResult struct {
	Exams         int           `json:"exams"`
	Doctors       int           `json:"doctors"`
	Patients      int           `json:"patients"`
	Appointments  int           `json:"appointments"`
	Consultations int           `json:"consultations"`
	Referrals     int           `json:"referrals"`
	Reschedules   int           `json:"reschedules"`
	Total         int           `json:"total"`
	Duration      time.Duration `json:"duration"`
}

// ---------------------------------------------------------------------------
// Pools
// ---------------------------------------------------------------------------

var (
	firstNamesFemale = []string{
		"Ana", "Maria", "Beatriz", "Juliana", "Camila", "Fernanda", "Larissa",
		"Patrícia", "Aline", "Mariana", "Gabriela", "Letícia",
	}
	firstNamesMale = []string{
		"João", "Pedro", "Lucas", "Rafael", "Gustavo", "Carlos", "Bruno",
		"Felipe", "Rodrigo", "Thiago", "André", "Marcelo",
	}
	lastNames = []string{
		"Silva", "Santos", "Oliveira", "Souza", "Lima", "Pereira", "Costa",
		"Ferreira", "Almeida", "Ribeiro", "Carvalho", "Gomes", "Martins",
	}
	specialties = []string{
		"Cardiologia", "Clínica Geral", "Dermatologia", "Ortopedia",
		"Pediatria", "Neurologia", "Endocrinologia",
	}
	diagnoses = []string{
		"Hipertensão arterial", "Diabetes tipo 2", "Cefaleia tensional",
		"Lombalgia", "Dermatite atópica", "Arritmia", "Ansiedade",
		"Check-up sem alterações",
	}
	examCatalogue = []string{
		"Hemograma completo", "Eletrocardiograma", "Ecocardiograma",
		"Raio-X de tórax", "Glicemia em jejum", "Colesterol total",
		"Ressonância magnética", "Ultrassonografia abdominal",
	}
	rescheduleReasons = []string{
		"Conflito de agenda", "Médico indisponível", "Paciente viajando",
	}
	requesters = []string{"Paciente", "Clínica"}
)

// seedEpoch anchors generated dates so a given seed always yields the same data.
var seedEpoch = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// DataGenerator
// ---------------------------------------------------------------------------

// DataGenerator produces deterministic clinic records.
type DataGenerator struct {
	rng     *rand.Rand
	counter int
}

// NewDataGenerator returns a generator seeded for reproducibility. If seed is
// 0 a time-based seed is chosen.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) randomDate(minYear, maxYear int) string {
	y := minYear + g.rng.Intn(maxYear-minYear+1)
	m := 1 + g.rng.Intn(12)
	d := 1 + g.rng.Intn(28)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func (g *DataGenerator) randomPhone() string {
	return fmt.Sprintf("(%02d) 9%04d-%04d", 11+g.rng.Intn(89), g.rng.Intn(10000), g.rng.Intn(10000))
}

// slot returns a weekday business-hours time within ninety days of seedEpoch.
func (g *DataGenerator) slot() time.Time {
	day := seedEpoch.AddDate(0, 0, g.rng.Intn(90))
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Add(time.Duration(g.rng.Intn(18)) * 30 * time.Minute)
}

// GeneratePatient produces a patient with up to two phones.
func (g *DataGenerator) GeneratePatient() PatientCreate {
	g.counter++
	sex := "F"
	first := g.pick(firstNamesFemale)
	if g.rng.Intn(2) == 0 {
		sex = "M"
		first = g.pick(firstNamesMale)
	}
	name := first + " " + g.pick(lastNames)

	p := PatientCreate{
		Name:      name,
		BirthDate: g.randomDate(1945, 2015),
		Sex:       sex,
		CPF:       fmt.Sprintf("%03d.%03d.%03d-%02d", g.rng.Intn(1000), g.rng.Intn(1000), g.counter, g.rng.Intn(100)),
	}
	if g.rng.Intn(3) > 0 {
		email := fmt.Sprintf("paciente%d@example.com", g.counter)
		p.Email = &email
	}
	if n := g.rng.Intn(3); n > 0 {
		phones := make([]Phone, 0, n)
		phones = append(phones, Phone{Number: g.randomPhone(), Type: "Celular"})
		if n > 1 {
			phones = append(phones, Phone{Number: g.randomPhone(), Type: "Residencial"})
		}
		p.Phones = &phones
	}
	return p
}

// GenerateDoctor produces the i-th doctor. The first one is always a
// cardiologist.
func (g *DataGenerator) GenerateDoctor(i int) Doctor {
	spec := specialties[0]
	if i > 0 {
		spec = g.pick(specialties)
	}
	first := g.pick(firstNamesFemale)
	if g.rng.Intn(2) == 0 {
		first = g.pick(firstNamesMale)
	}
	return Doctor{
		CRM:       fmt.Sprintf("CRM%05d", 10000+i*137+g.rng.Intn(100)),
		Name:      "Dr(a). " + first + " " + g.pick(lastNames),
		Specialty: spec,
	}
}

// ---------------------------------------------------------------------------
// Seeder
// ---------------------------------------------------------------------------

// Seeder fills a Store with generated data.
type Seeder struct {
	config    SeedConfig
	generator *DataGenerator
	store     *Store
}

func NewSeeder(store *Store, cfg SeedConfig) *Seeder {
	cfg = cfg.withDefaults()
	return &Seeder{
		config:    cfg,
		generator: NewDataGenerator(cfg.Seed),
		store:     store,
	}
}

// Generate resets the store and seeds it. Every record goes through the
// store's own validation.
func (s *Seeder) Generate() (*SeedResult, error) {
	start := time.Now()
	g := s.generator
	result := &SeedResult{}

	s.store.Reset()

	var examIDs []int
	for i, name := range examCatalogue {
		s.store.AddExam(Exam{ID: i + 1, Name: name})
		examIDs = append(examIDs, i+1)
	}
	result.Exams = len(examIDs)

	var doctors []Doctor
	for i := 0; i < s.config.DoctorCount; i++ {
		d, err := s.store.CreateDoctor(g.GenerateDoctor(i))
		if err != nil {
			continue
		}
		doctors = append(doctors, d)
	}
	result.Doctors = len(doctors)
	if len(doctors) == 0 {
		return nil, fmt.Errorf("seeding doctors: no doctor created")
	}

	for i := 0; i < s.config.PatientCount; i++ {
		p, err := s.store.CreatePatient(g.GeneratePatient())
		if err != nil {
			return nil, fmt.Errorf("seeding patient: %w", err)
		}
		result.Patients++

		n := 1 + g.rng.Intn(s.config.AppointmentsPerPatient)
		for j := 0; j < n; j++ {
			a, err := s.store.CreateAppointment(AppointmentCreate{PatientID: p.ID, Date: g.slot()})
			if err != nil {
				return nil, fmt.Errorf("seeding appointment: %w", err)
			}
			result.Appointments++

			switch roll := g.rng.Intn(10); {
			case roll < 5:
				if err := s.attend(a, doctors, examIDs, result); err != nil {
					return nil, err
				}
			case roll < 6:
				if err := s.reschedule(a, result); err != nil {
					return nil, err
				}
			case roll < 7:
				status := "Cancelada"
				if g.rng.Intn(2) == 0 {
					status = "Ausente"
				}
				if _, err := s.store.UpdateAppointment(a.ID, a.PatientID, AppointmentUpdate{Status: &status}); err != nil {
					return nil, err
				}
			}
		}
	}

	result.Total = result.Exams + result.Doctors + result.Patients + result.Appointments +
		result.Consultations + result.Referrals + result.Reschedules
	result.Duration = time.Since(start)
	return result, nil
}

// attend marks a as done, records its consultation and maybe a referral.
func (s *Seeder) attend(a Appointment, doctors []Doctor, examIDs []int, result *SeedResult) error {
	g := s.generator
	done := "Realizada"
	if _, err := s.store.UpdateAppointment(a.ID, a.PatientID, AppointmentUpdate{Status: &done}); err != nil {
		return err
	}
	d := doctors[g.rng.Intn(len(doctors))]
	_, err := s.store.CreateConsultation(Consultation{
		CRM:           d.CRM,
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DateTime:      a.Date.Add(15 * time.Minute),
		Diagnosis:     g.pick(diagnoses),
	})
	if err != nil {
		return fmt.Errorf("seeding consultation: %w", err)
	}
	result.Consultations++

	if g.rng.Float64() >= s.config.ReferralRate {
		return nil
	}
	kinds := []string{"Exame", "Consulta", "Ambos"}
	in := ReferralCreate{AppointmentID: a.ID, PatientID: a.PatientID, Type: kinds[g.rng.Intn(len(kinds))]}
	if in.Type != "Consulta" {
		for _, i := range g.rng.Perm(len(examIDs))[:1+g.rng.Intn(2)] {
			in.ExamIDs = append(in.ExamIDs, examIDs[i])
		}
	}
	if in.Type != "Exame" {
		next, err := s.store.CreateAppointment(AppointmentCreate{PatientID: a.PatientID, Date: a.Date.AddDate(0, 0, 30)})
		if err != nil {
			return err
		}
		result.Appointments++
		in.NewAppointmentID, in.NewPatientID = &next.ID, &next.PatientID
	}
	if _, err := s.store.CreateReferral(in); err != nil {
		return fmt.Errorf("seeding referral: %w", err)
	}
	result.Referrals++
	return nil
}

// reschedule moves a to a new appointment a week later.
func (s *Seeder) reschedule(a Appointment, result *SeedResult) error {
	g := s.generator
	moved := "Remarcada"
	if _, err := s.store.UpdateAppointment(a.ID, a.PatientID, AppointmentUpdate{Status: &moved}); err != nil {
		return err
	}
	next, err := s.store.CreateAppointment(AppointmentCreate{PatientID: a.PatientID, Date: a.Date.AddDate(0, 0, 7)})
	if err != nil {
		return err
	}
	result.Appointments++
	reason := g.pick(rescheduleReasons)
	who := g.pick(requesters)
	_, err = s.store.CreateReschedule(Reschedule{
		OldAppointmentID: a.ID,
		OldPatientID:     a.PatientID,
		NewAppointmentID: next.ID,
		NewPatientID:     next.PatientID,
		Reason:           &reason,
		Date:             a.Date.Format("2006-01-02"),
		RequestedBy:      &who,
	})
	if err != nil {
		return fmt.Errorf("seeding reschedule: %w", err)
	}
	result.Reschedules++
	return nil
}

// ExportNDJSON writes one collection of the store as newline-delimited JSON.
func (s *Store) ExportNDJSON(w io.Writer, collection string) error {
	var items []interface{}
	switch collection {
	case "pacientes":
		for _, p := range s.ListPatients() {
			items = append(items, p)
		}
	case "medicos":
		for _, d := range s.ListDoctors() {
			items = append(items, d)
		}
	case "agendamentos":
		for _, a := range s.ListAppointments() {
			items = append(items, a)
		}
	case "consultas":
		for _, c := range s.ListConsultations() {
			items = append(items, c)
		}
	case "remarcas":
		for _, r := range s.ListReschedules() {
			items = append(items, r)
		}
	default:
		return notFound("unknown collection %q", collection)
	}

	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("encoding %s: %w", collection, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// SeedHandler — Echo HTTP handlers
// ---------------------------------------------------------------------------

// SeedHandler provides HTTP endpoints for sandbox data management.
type SeedHandler struct {
	store *Store
	mu    sync.Mutex
}

func NewSeedHandler(store *Store) *SeedHandler {
	return &SeedHandler{store: store}
}

// RegisterRoutes registers sandbox routes on the given Echo group.
func (h *SeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/seed", h.handleSeed)
	g.POST("/reset", h.handleReset)
	g.GET("/export/ndjson/:collection", h.handleExportNDJSON)
}

func (h *SeedHandler) handleSeed(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var cfg SeedConfig
	if err := c.Bind(&cfg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := NewSeeder(h.store, cfg).Generate()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SeedHandler) handleReset(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.store.Reset()
	return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
}

func (h *SeedHandler) handleExportNDJSON(c echo.Context) error {
	collection := c.Param("collection")
	switch collection {
	case "pacientes", "medicos", "agendamentos", "consultas", "remarcas":
	default:
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown collection %q", collection))
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/x-ndjson")
	c.Response().WriteHeader(http.StatusOK)
	return h.store.ExportNDJSON(c.Response().Writer, collection)
}
