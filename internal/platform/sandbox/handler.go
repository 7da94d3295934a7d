package sandbox

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/speedmed/clinic-console/pkg/pagination"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/pacientes", h.ListPatients)
	e.POST("/pacientes", h.CreatePatient)
	e.GET("/pacientes/:id", h.GetPatient)
	e.PATCH("/pacientes/:id", h.UpdatePatient)
	e.DELETE("/pacientes/:id", h.DeletePatient)

	e.GET("/medicos", h.ListDoctors)
	e.POST("/medicos", h.CreateDoctor)
	e.GET("/medicos/:crm", h.GetDoctor)
	e.PATCH("/medicos/:crm", h.UpdateDoctor)
	e.DELETE("/medicos/:crm", h.DeleteDoctor)

	e.GET("/agendamentos", h.ListAppointments)
	e.POST("/agendamentos", h.CreateAppointment)
	e.GET("/agendamentos/:id/:patient", h.GetAppointment)
	e.PATCH("/agendamentos/:id/:patient", h.UpdateAppointment)
	e.DELETE("/agendamentos/:id/:patient", h.DeleteAppointment)

	e.GET("/consultas", h.ListConsultations)
	e.POST("/consultas", h.CreateConsultation)
	e.GET("/consultas/:crm/:id/:patient", h.GetConsultation)
	e.PATCH("/consultas/:crm/:id/:patient", h.UpdateConsultation)
	e.DELETE("/consultas/:crm/:id/:patient", h.DeleteConsultation)

	e.POST("/encaminhamentos", h.CreateReferral)
	e.GET("/encaminhamentos/:id", h.GetReferral)

	e.GET("/remarcas", h.ListReschedules)
	e.POST("/remarcas", h.CreateReschedule)

	r := e.Group("/relatorios")
	r.GET("/agendamentos-por-status", report(h.store.AppointmentsByStatus))
	r.GET("/medicos-total-consultas", report(h.store.ConsultationsPerDoctor))
	r.GET("/encaminhamentos-por-tipo", report(h.store.ReferralsByType))
	r.GET("/pacientes-cardiologia", report(h.store.CardiologyPatients))
	r.GET("/categoria-paciente", report(h.store.PatientCategories))
	r.GET("/ultimo-agendamento-paciente", report(h.store.LastAppointments))
	r.GET("/consultas-encaminhamentos", report(h.store.ConsultationReferrals))
	r.GET("/exames-consultas-por-paciente", report(h.store.ExamsPerPatient))
}

func report[T any](fn func() []T) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, fn())
	}
}

// Total and more-results headers are set only for windowed requests.
const (
	totalCountHeader = "X-Total-Count"
	hasMoreHeader    = "X-Has-More"
)

func list[T any](c echo.Context, items []T) error {
	p := pagination.FromContext(c)
	if p.Bounded() {
		h := c.Response().Header()
		h.Set(totalCountHeader, strconv.Itoa(len(items)))
		h.Set(hasMoreHeader, strconv.FormatBool(p.HasNext(len(items))))
	}
	return c.JSON(http.StatusOK, pagination.Page(items, p))
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid "+name)
	}
	return v, nil
}

func apptParams(c echo.Context) (int, int, error) {
	id, err := intParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	patient, err := intParam(c, "patient")
	if err != nil {
		return 0, 0, err
	}
	return id, patient, nil
}

func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// -- Patient Handlers --

func (h *Handler) ListPatients(c echo.Context) error {
	return list(c, h.store.ListPatients())
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.store.GetPatient(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var in PatientCreate
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.store.CreatePatient(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var in PatientUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.store.UpdatePatient(id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeletePatient(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	return list(c, h.store.ListDoctors())
}

func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.store.GetDoctor(c.Param("crm"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in Doctor
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := h.store.CreateDoctor(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	var in DoctorUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	d, err := h.store.UpdateDoctor(c.Param("crm"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	if err := h.store.DeleteDoctor(c.Param("crm")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Appointment Handlers --

func (h *Handler) ListAppointments(c echo.Context) error {
	return list(c, h.store.ListAppointments())
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	a, err := h.store.GetAppointment(id, patient)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var in AppointmentCreate
	if err := bind(c, &in); err != nil {
		return err
	}
	a, err := h.store.CreateAppointment(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	var in AppointmentUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	a, err := h.store.UpdateAppointment(id, patient, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteAppointment(id, patient); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Consultation Handlers --

func (h *Handler) ListConsultations(c echo.Context) error {
	return list(c, h.store.ListConsultations())
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	cons, err := h.store.GetConsultation(c.Param("crm"), id, patient)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var in Consultation
	if err := bind(c, &in); err != nil {
		return err
	}
	cons, err := h.store.CreateConsultation(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cons)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	var in ConsultationUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	cons, err := h.store.UpdateConsultation(c.Param("crm"), id, patient, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) DeleteConsultation(c echo.Context) error {
	id, patient, err := apptParams(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteConsultation(c.Param("crm"), id, patient); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Referral Handlers --

func (h *Handler) CreateReferral(c echo.Context) error {
	var in ReferralCreate
	if err := bind(c, &in); err != nil {
		return err
	}
	r, err := h.store.CreateReferral(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReferral(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	r, err := h.store.GetReferral(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// -- Reschedule Handlers --

func (h *Handler) ListReschedules(c echo.Context) error {
	return list(c, h.store.ListReschedules())
}

func (h *Handler) CreateReschedule(c echo.Context) error {
	var in Reschedule
	if err := bind(c, &in); err != nil {
		return err
	}
	r, err := h.store.CreateReschedule(in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}
