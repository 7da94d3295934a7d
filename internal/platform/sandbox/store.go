package sandbox

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// APIError carries the status and detail message the API answers with.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string { return e.Detail }

// StatusCode is the HTTP status the error is answered with.
func (e *APIError) StatusCode() int { return e.Status }

func notFound(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusNotFound, Detail: fmt.Sprintf(format, args...)}
}

func badRequest(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusBadRequest, Detail: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) *APIError {
	return &APIError{Status: http.StatusConflict, Detail: fmt.Sprintf(format, args...)}
}

// Store holds every record of the sandbox clinic. All methods are safe for
// concurrent use and return copies.
type Store struct {
	mu sync.RWMutex

	patients      map[int]*Patient
	doctors       map[string]*Doctor
	appointments  map[apptKey]*Appointment
	consultations map[consKey]*Consultation
	exams         map[int]*Exam
	referrals     map[int]*Referral
	reschedules   []*Reschedule

	nextPatient     int
	nextAppointment int
	nextReferral    int
	nextReschedule  int
}

func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Reset drops every record and restarts the id sequences.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.patients = make(map[int]*Patient)
	s.doctors = make(map[string]*Doctor)
	s.appointments = make(map[apptKey]*Appointment)
	s.consultations = make(map[consKey]*Consultation)
	s.exams = make(map[int]*Exam)
	s.referrals = make(map[int]*Referral)
	s.reschedules = nil
	s.nextPatient, s.nextAppointment, s.nextReferral, s.nextReschedule = 0, 0, 0, 0
}

// -- Exams --

// AddExam registers an exam in the catalogue.
func (s *Store) AddExam(e Exam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exams[e.ID] = &e
}

// -- Patients --

func copyPatient(p *Patient) Patient {
	out := *p
	out.Phones = append([]Phone{}, p.Phones...)
	return out
}

func (s *Store) ListPatients() []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.patients))
	for id := range s.patients {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Patient, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyPatient(s.patients[id]))
	}
	return out
}

func (s *Store) GetPatient(id int) (Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	if !ok {
		return Patient{}, notFound("Patient not found.")
	}
	return copyPatient(p), nil
}

func validatePhones(phones []Phone) error {
	for _, ph := range phones {
		if strings.TrimSpace(ph.Number) == "" {
			return badRequest("phone number is required")
		}
		if !phoneTypes[ph.Type] {
			return badRequest("invalid phone type %q", ph.Type)
		}
	}
	return nil
}

func (s *Store) CreatePatient(in PatientCreate) (Patient, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CPF) == "" {
		return Patient{}, badRequest("nome and cpf are required")
	}
	if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
		return Patient{}, badRequest("invalid data_nascimento %q", in.BirthDate)
	}
	if !sexes[in.Sex] {
		return Patient{}, badRequest("invalid sexo %q", in.Sex)
	}
	var phones []Phone
	if in.Phones != nil {
		phones = *in.Phones
	}
	if err := validatePhones(phones); err != nil {
		return Patient{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.CPF == in.CPF {
			return Patient{}, conflict("CPF already registered.")
		}
	}
	s.nextPatient++
	p := &Patient{
		ID:        s.nextPatient,
		Name:      in.Name,
		BirthDate: in.BirthDate,
		Sex:       in.Sex,
		Email:     in.Email,
		CPF:       in.CPF,
	}
	for _, ph := range phones {
		p.Phones = append(p.Phones, Phone{PatientID: p.ID, Number: ph.Number, Type: ph.Type})
	}
	s.patients[p.ID] = p
	return copyPatient(p), nil
}

// UpdatePatient applies the provided fields. A nil phone list leaves phones
// untouched; any non-nil list replaces them. An explicit null email clears it.
func (s *Store) UpdatePatient(id int, in PatientUpdate) (Patient, error) {
	if in.Sex != nil && !sexes[*in.Sex] {
		return Patient{}, badRequest("invalid sexo %q", *in.Sex)
	}
	if in.Phones != nil {
		if err := validatePhones(*in.Phones); err != nil {
			return Patient{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return Patient{}, notFound("Patient not found.")
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Sex != nil {
		p.Sex = *in.Sex
	}
	switch {
	case in.Email != nil:
		p.Email = in.Email
	case in.ClearEmail:
		p.Email = nil
	}
	if in.Phones != nil {
		p.Phones = nil
		for _, ph := range *in.Phones {
			p.Phones = append(p.Phones, Phone{PatientID: id, Number: ph.Number, Type: ph.Type})
		}
	}
	return copyPatient(p), nil
}

// DeletePatient removes the patient together with its phones.
func (s *Store) DeletePatient(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[id]; !ok {
		return notFound("Patient not found.")
	}
	for k := range s.appointments {
		if k.PatientID == id {
			return conflict("Cannot delete a patient with appointments, consultations or referrals. Remove them first.")
		}
	}
	delete(s.patients, id)
	return nil
}

// -- Doctors --

func (s *Store) ListDoctors() []Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CRM < out[j].CRM })
	return out
}

func (s *Store) GetDoctor(crm string) (Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[crm]
	if !ok {
		return Doctor{}, notFound("Doctor not found.")
	}
	return *d, nil
}

func (s *Store) CreateDoctor(in Doctor) (Doctor, error) {
	if strings.TrimSpace(in.CRM) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Specialty) == "" {
		return Doctor{}, badRequest("crm, nome and especialidade are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[in.CRM]; ok {
		return Doctor{}, badRequest("doctor with CRM %s already exists", in.CRM)
	}
	d := in
	s.doctors[d.CRM] = &d
	return d, nil
}

func (s *Store) UpdateDoctor(crm string, in DoctorUpdate) (Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[crm]
	if !ok {
		return Doctor{}, notFound("Doctor not found.")
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	return *d, nil
}

func (s *Store) DeleteDoctor(crm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[crm]; !ok {
		return notFound("Doctor not found.")
	}
	for k := range s.consultations {
		if k.CRM == crm {
			return conflict("Cannot delete a doctor with consultations.")
		}
	}
	delete(s.doctors, crm)
	return nil
}

// -- Appointments --

func (s *Store) ListAppointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetAppointment(id, patientID int) (Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[apptKey{id, patientID}]
	if !ok {
		return Appointment{}, notFound("Appointment not found")
	}
	return *a, nil
}

func (s *Store) CreateAppointment(in AppointmentCreate) (Appointment, error) {
	if in.Date.IsZero() {
		return Appointment{}, badRequest("data is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[in.PatientID]; !ok {
		return Appointment{}, badRequest("Error creating appointment: patient %d does not exist", in.PatientID)
	}
	s.nextAppointment++
	a := &Appointment{
		ID:        s.nextAppointment,
		PatientID: in.PatientID,
		Date:      in.Date.UTC(),
		Notes:     in.Notes,
		Status:    "Marcada",
	}
	s.appointments[a.key()] = a
	return *a, nil
}

func (s *Store) UpdateAppointment(id, patientID int, in AppointmentUpdate) (Appointment, error) {
	if in.Status != nil && !appointmentStatuses[*in.Status] {
		return Appointment{}, badRequest("invalid status %q", *in.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := apptKey{id, patientID}
	a, ok := s.appointments[k]
	if !ok {
		return Appointment{}, notFound("Appointment not found")
	}
	if in.PatientID != nil && *in.PatientID != patientID {
		return Appointment{}, badRequest("id_paciente is part of the appointment key and cannot change")
	}
	if in.Date != nil {
		a.Date = in.Date.UTC()
	}
	if in.Notes != nil {
		a.Notes = in.Notes
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	return *a, nil
}

func (s *Store) DeleteAppointment(id, patientID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := apptKey{id, patientID}
	if _, ok := s.appointments[k]; !ok {
		return notFound("Appointment not found")
	}
	if s.appointmentReferenced(k) {
		return conflict("Cannot delete an appointment with consultations or reschedules.")
	}
	delete(s.appointments, k)
	return nil
}

func (s *Store) appointmentReferenced(k apptKey) bool {
	for ck := range s.consultations {
		if ck.AppointmentID == k.AppointmentID && ck.PatientID == k.PatientID {
			return true
		}
	}
	for _, r := range s.reschedules {
		if (r.OldAppointmentID == k.AppointmentID && r.OldPatientID == k.PatientID) ||
			(r.NewAppointmentID == k.AppointmentID && r.NewPatientID == k.PatientID) {
			return true
		}
	}
	for _, r := range s.referrals {
		if (r.AppointmentID == k.AppointmentID && r.PatientID == k.PatientID) ||
			(r.NewAppt != nil && *r.NewAppt == k) {
			return true
		}
	}
	return false
}

// -- Consultations --

func (s *Store) ListConsultations() []Consultation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Consultation, 0, len(s.consultations))
	for _, c := range s.consultations {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentID != out[j].AppointmentID {
			return out[i].AppointmentID < out[j].AppointmentID
		}
		return out[i].CRM < out[j].CRM
	})
	return out
}

func (s *Store) GetConsultation(crm string, id, patientID int) (Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.consultations[consKey{crm, id, patientID}]
	if !ok {
		return Consultation{}, notFound("Consultation not found")
	}
	return *c, nil
}

func (s *Store) CreateConsultation(in Consultation) (Consultation, error) {
	if strings.TrimSpace(in.CRM) == "" || strings.TrimSpace(in.Diagnosis) == "" || in.DateTime.IsZero() {
		return Consultation{}, badRequest("crm, data_hora and diagnostico are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[in.CRM]; !ok {
		return Consultation{}, badRequest("Error creating consultation: doctor %s does not exist", in.CRM)
	}
	if _, ok := s.appointments[apptKey{in.AppointmentID, in.PatientID}]; !ok {
		return Consultation{}, badRequest("Error creating consultation: appointment %d/%d does not exist", in.AppointmentID, in.PatientID)
	}
	for k := range s.consultations {
		if k.AppointmentID == in.AppointmentID && k.PatientID == in.PatientID {
			return Consultation{}, badRequest("Error creating consultation: appointment %d/%d already has a consultation", in.AppointmentID, in.PatientID)
		}
	}
	c := in
	c.DateTime = c.DateTime.UTC()
	s.consultations[c.key()] = &c
	return c, nil
}

func (s *Store) UpdateConsultation(crm string, id, patientID int, in ConsultationUpdate) (Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.consultations[consKey{crm, id, patientID}]
	if !ok {
		return Consultation{}, notFound("Consultation not found")
	}
	if in.Diagnosis != nil {
		c.Diagnosis = *in.Diagnosis
	}
	if in.Notes != nil {
		c.Notes = in.Notes
	}
	return *c, nil
}

func (s *Store) DeleteConsultation(crm string, id, patientID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := consKey{crm, id, patientID}
	if _, ok := s.consultations[k]; !ok {
		return notFound("Consultation not found")
	}
	for _, r := range s.referrals {
		if r.AppointmentID == id && r.PatientID == patientID {
			return conflict("Cannot delete a consultation with referrals. Remove them first.")
		}
	}
	delete(s.consultations, k)
	return nil
}

// -- Referrals --

func (s *Store) CreateReferral(in ReferralCreate) (ReferralResponse, error) {
	if !referralTypes[in.Type] {
		return ReferralResponse{}, badRequest("invalid tipo %q", in.Type)
	}
	needsExams := in.Type == "Exame" || in.Type == "Ambos"
	needsConsult := in.Type == "Consulta" || in.Type == "Ambos"
	if needsExams && len(in.ExamIDs) == 0 {
		return ReferralResponse{}, badRequest("For referral type %s, 'exames_ids' is required.", in.Type)
	}
	if needsConsult && (in.NewAppointmentID == nil || in.NewPatientID == nil) {
		return ReferralResponse{}, badRequest("For referral type %s, 'agendamento_novo_id' and 'paciente_novo_id' are required.", in.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[apptKey{in.AppointmentID, in.PatientID}]; !ok {
		return ReferralResponse{}, badRequest("Error creating referral: appointment %d/%d does not exist", in.AppointmentID, in.PatientID)
	}
	r := &Referral{
		AppointmentID: in.AppointmentID,
		PatientID:     in.PatientID,
		Type:          in.Type,
		Notes:         in.Notes,
	}
	if needsExams {
		for _, id := range in.ExamIDs {
			if _, ok := s.exams[id]; !ok {
				return ReferralResponse{}, badRequest("Error creating referral: exam %d does not exist", id)
			}
		}
		r.ExamIDs = append([]int{}, in.ExamIDs...)
	}
	if needsConsult {
		k := apptKey{*in.NewAppointmentID, *in.NewPatientID}
		if _, ok := s.appointments[k]; !ok {
			return ReferralResponse{}, badRequest("Error creating referral: appointment %d/%d does not exist", k.AppointmentID, k.PatientID)
		}
		r.NewAppt = &k
	}
	s.nextReferral++
	r.ID = s.nextReferral
	s.referrals[r.ID] = r
	return s.referralResponse(r), nil
}

func (s *Store) GetReferral(id int) (ReferralResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.referrals[id]
	if !ok {
		return ReferralResponse{}, notFound("Referral not found.")
	}
	return s.referralResponse(r), nil
}

func (s *Store) referralResponse(r *Referral) ReferralResponse {
	resp := ReferralResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		PatientID:     r.PatientID,
		Type:          r.Type,
		Notes:         r.Notes,
		Exams:         []ExamInfo{},
	}
	for _, id := range r.ExamIDs {
		if e, ok := s.exams[id]; ok {
			resp.Exams = append(resp.Exams, ExamInfo{ID: e.ID, Name: e.Name})
		}
	}
	if r.NewAppt != nil {
		if a, ok := s.appointments[*r.NewAppt]; ok {
			resp.ScheduledConsultation = &AppointmentInfo{AppointmentID: a.ID, PatientID: a.PatientID, Date: a.Date}
		}
	}
	return resp
}

// -- Reschedules --

func (s *Store) ListReschedules() []Reschedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Reschedule, 0, len(s.reschedules))
	for _, r := range s.reschedules {
		out = append(out, *r)
	}
	return out
}

func (s *Store) CreateReschedule(in Reschedule) (Reschedule, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return Reschedule{}, badRequest("invalid data_remarcacao %q", in.Date)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range []apptKey{{in.OldAppointmentID, in.OldPatientID}, {in.NewAppointmentID, in.NewPatientID}} {
		if _, ok := s.appointments[k]; !ok {
			return Reschedule{}, badRequest("Error creating reschedule: appointment %d/%d does not exist", k.AppointmentID, k.PatientID)
		}
	}
	s.nextReschedule++
	r := in
	r.ID = s.nextReschedule
	s.reschedules = append(s.reschedules, &r)
	return r, nil
}
